package labelcue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mlsorensen/labelcue/pkg/icons"
)

// Transport delivers newline-delimited labels from some outside source.
// Implementations handle the framing; the gate only ever sees complete lines.
type Transport interface {
	// Start brings the transport up. It returns a channel yielding the text
	// preceding each newline. The channel is closed when the source ends or
	// ctx is canceled. Start must be called at most once.
	Start(ctx context.Context) (<-chan string, error)

	// Kind is the registry name the transport was created under.
	Kind() string
}

// Display is the visual collaborator. Calls are effect-only and must not
// block the caller for long.
type Display interface {
	// ShowText surfaces a raw label.
	ShowText(text string)
	// ShowIcon draws one of the built-in images.
	ShowIcon(icon icons.Icon)
}

// Speaker is the audio collaborator.
type Speaker interface {
	// PlayTone starts a tone and returns without waiting for it to finish.
	PlayTone(hz int, d time.Duration)
}

// TransportOptions carries the settings any registered transport might need.
type TransportOptions struct {
	Kind      string        `yaml:"kind"`
	LocalName string        `yaml:"local_name"`
	Port      string        `yaml:"port"`
	BaudRate  int           `yaml:"baud_rate"`
	Script    []string      `yaml:"script"`
	Interval  time.Duration `yaml:"interval"`
	Loop      bool          `yaml:"loop"`
	// Buffer lets one complete line wait for the gate when set to 1. The
	// BLE transport always keeps the newest line regardless.
	Buffer    int           `yaml:"buffer"`
}

// --- Implementation Registry ---

// Factory creates a new, not yet started Transport.
type Factory func(opts TransportOptions, log *zap.Logger) Transport

var ErrUnknownTransport = errors.New("unknown transport")

var (
	registry = make(map[string]Factory)
	regLock  = sync.RWMutex{}
)

// Register makes a transport available under kind. It is meant to be called
// from the init() function of the implementation's package.
func Register(kind string, factory Factory) {
	regLock.Lock()
	defer regLock.Unlock()

	if _, found := registry[kind]; found {
		zap.L().Warn("transport implementation is being overwritten", zap.String("kind", kind))
	}
	registry[kind] = factory
}

// NewTransport creates the transport registered for opts.Kind.
func NewTransport(opts TransportOptions, log *zap.Logger) (Transport, error) {
	regLock.RLock()
	factory, ok := registry[opts.Kind]
	regLock.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownTransport, opts.Kind, Registered())
	}
	if log == nil {
		log = zap.NewNop()
	}
	return factory(opts, log.Named(opts.Kind)), nil
}

// Registered lists the registered transport kinds, sorted.
func Registered() []string {
	regLock.RLock()
	defer regLock.RUnlock()

	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

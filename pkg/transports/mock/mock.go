// Package mock provides a scripted transport that replays labels on a timer.
// It is intended for development and testing when no board or classifier is
// connected.
package mock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mlsorensen/labelcue"
)

// This init function registers the mock with the central registry.
// To use it, you must explicitly import this package.
func init() {
	labelcue.Register("mock", New)
}

// This line is the compile-time check. It will fail to compile if
// *Transport ever stops satisfying the labelcue.Transport interface.
var _ labelcue.Transport = (*Transport)(nil)

const DefaultInterval = 750 * time.Millisecond

// DefaultScript exercises a repeat, every stock label and an unknown one.
var DefaultScript = []string{"Klasse1", "Klasse1", "Klasse2", "  Klasse3  ", "Unknown", "Klasse1"}

// Transport replays a script of raw lines. Each script entry may itself
// contain several newline-separated lines.
type Transport struct {
	mu       sync.Mutex
	script   []string
	interval time.Duration
	loop     bool
	buffer   int
	started  bool
	sent     int
	log      *zap.Logger
}

// New creates a mock transport. An empty script uses DefaultScript; a zero
// interval uses DefaultInterval, a negative one sends without delay.
func New(opts labelcue.TransportOptions, log *zap.Logger) labelcue.Transport {
	if log == nil {
		log = zap.NewNop()
	}
	script := opts.Script
	if len(script) == 0 {
		script = DefaultScript
	}
	interval := opts.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	return &Transport{
		script:   splitScript(script),
		interval: interval,
		loop:     opts.Loop,
		buffer:   opts.Buffer,
		log:      log,
	}
}

func (t *Transport) Kind() string {
	return "mock"
}

// Sent reports how many lines have been delivered so far.
func (t *Transport) Sent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sent
}

// Start begins the replay.
func (t *Transport) Start(ctx context.Context) (<-chan string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil, errors.New("mock transport is already started")
	}
	t.started = true

	lines := make(chan string, t.buffer)
	go t.replay(ctx, lines)

	t.log.Info("mock transport started", zap.Int("lines", len(t.script)), zap.Duration("interval", t.interval), zap.Bool("loop", t.loop))
	return lines, nil
}

// replay is the core loop that generates the fake input.
func (t *Transport) replay(ctx context.Context, lines chan<- string) {
	// Closing the channel is how the run loop learns the script is over.
	defer close(lines)
	defer t.log.Debug("mock replay stopped")

	var tick <-chan time.Time
	if t.interval > 0 {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		for _, line := range t.script {
			if tick != nil {
				select {
				case <-tick:
				case <-ctx.Done():
					return
				}
			}

			select {
			case lines <- line:
				t.mu.Lock()
				t.sent++
				t.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
		if !t.loop {
			return
		}
	}
}

func splitScript(script []string) []string {
	var out []string
	for _, entry := range script {
		entry = strings.TrimSuffix(entry, "\n")
		out = append(out, strings.Split(entry, "\n")...)
	}
	return out
}

package labelcue

import (
	"strings"

	"go.uber.org/zap"
)

// Gate trims incoming lines and drops a line equal to the one accepted just
// before it. A Gate is not safe for concurrent use; Run feeds it from a
// single goroutine.
type Gate struct {
	last       string
	display    Display
	dispatcher *Dispatcher
	log        *zap.Logger
}

// NewGate returns a gate that shows accepted labels on display and forwards
// them to dispatcher. log may be nil.
func NewGate(display Display, dispatcher *Dispatcher, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{display: display, dispatcher: dispatcher, log: log}
}

// OnReceive handles one raw line from the transport.
func (g *Gate) OnReceive(raw string) {
	label := strings.TrimSpace(raw)
	if label == g.last {
		return
	}
	g.last = label
	g.log.Debug("label accepted", zap.String("label", label))

	g.display.ShowText(label)
	g.dispatcher.Dispatch(label)
}

// Last is the most recently accepted label, empty before the first one.
func (g *Gate) Last() string {
	return g.last
}

package labelcue

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Dispatcher maps a label to its reaction and fires the outputs.
type Dispatcher struct {
	table   atomic.Pointer[Table]
	display Display
	speaker Speaker
	log     *zap.Logger
}

// NewDispatcher builds a dispatcher over table. log may be nil.
func NewDispatcher(table *Table, display Display, speaker Speaker, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{display: display, speaker: speaker, log: log}
	d.table.Store(table)
	return d
}

// Dispatch fires the reaction bound to label. Empty and unknown labels do
// nothing.
func (d *Dispatcher) Dispatch(label string) {
	if label == "" {
		return
	}
	r, ok := d.table.Load().Lookup(label)
	if !ok {
		d.log.Debug("no reaction for label", zap.String("label", label))
		return
	}
	d.log.Debug("reaction",
		zap.String("label", label),
		zap.Stringer("icon", r.Icon),
		zap.Int("hz", r.Frequency),
		zap.Duration("duration", r.Duration))

	d.display.ShowIcon(r.Icon)
	d.speaker.PlayTone(r.Frequency, r.Duration)
}

// SetTable swaps in a new table. Safe to call from any goroutine.
func (d *Dispatcher) SetTable(t *Table) {
	d.table.Store(t)
	d.log.Info("reaction table replaced", zap.Int("reactions", t.Len()))
}

// Table returns the table currently in use.
func (d *Dispatcher) Table() *Table {
	return d.table.Load()
}

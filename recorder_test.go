package labelcue

import (
	"fmt"
	"sync"
	"time"

	"github.com/mlsorensen/labelcue/pkg/icons"
)

// Recorder is a Display and Speaker that remembers every call as a string,
// e.g. "text Klasse1", "icon heart", "tone 440 200ms".
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *Recorder) ShowText(text string) { r.add("text " + text) }

func (r *Recorder) ShowIcon(icon icons.Icon) { r.add("icon " + icon.String()) }

func (r *Recorder) PlayTone(hz int, d time.Duration) { r.add(fmt.Sprintf("tone %d %s", hz, d)) }

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func (r *Recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// NewRecordingGate wires a gate and dispatcher over table to one recorder.
func NewRecordingGate(table *Table) (*Gate, *Recorder) {
	rec := &Recorder{}
	return NewGate(rec, NewDispatcher(table, rec, rec, nil), nil), rec
}

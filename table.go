package labelcue

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mlsorensen/labelcue/pkg/icons"
)

// Reaction is what fires when a label is recognized.
type Reaction struct {
	Icon      icons.Icon
	Frequency int // Hz
	Duration  time.Duration
}

// Entry binds one label to its reaction.
type Entry struct {
	Label    string
	Reaction Reaction
}

var (
	ErrEmptyLabel      = errors.New("empty label")
	ErrDuplicateLabel  = errors.New("duplicate label")
	ErrInvalidReaction = errors.New("invalid reaction")
)

// Table is an immutable label to reaction mapping. A Table is never changed
// after NewTable returns; reloading builds a new one.
type Table struct {
	reactions map[string]Reaction
	labels    []string
}

// NewTable validates entries and builds a table from them. known lists extra
// recognized labels that have no reaction of their own; it may be nil.
func NewTable(entries []Entry, known []string) (*Table, error) {
	t := &Table{reactions: make(map[string]Reaction, len(entries))}
	seen := make(map[string]struct{}, len(entries)+len(known))

	for i, e := range entries {
		if e.Label == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyLabel)
		}
		if _, dup := t.reactions[e.Label]; dup {
			return nil, fmt.Errorf("entry %d: %w %q", i, ErrDuplicateLabel, e.Label)
		}
		if err := e.Reaction.validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Label, err)
		}
		t.reactions[e.Label] = e.Reaction
		seen[e.Label] = struct{}{}
		t.labels = append(t.labels, e.Label)
	}

	for _, l := range known {
		if l == "" {
			return nil, fmt.Errorf("known labels: %w", ErrEmptyLabel)
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		t.labels = append(t.labels, l)
	}
	return t, nil
}

// DefaultTable is the stock three-class table.
func DefaultTable() *Table {
	t, err := NewTable([]Entry{
		{Label: "Klasse1", Reaction: Reaction{Icon: icons.Heart, Frequency: 440, Duration: 200 * time.Millisecond}},
		{Label: "Klasse2", Reaction: Reaction{Icon: icons.Square, Frequency: 262, Duration: 200 * time.Millisecond}},
		{Label: "Klasse3", Reaction: Reaction{Icon: icons.Triangle, Frequency: 523, Duration: 200 * time.Millisecond}},
	}, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup finds the reaction for label by exact match.
func (t *Table) Lookup(label string) (Reaction, bool) {
	if t == nil {
		return Reaction{}, false
	}
	r, ok := t.reactions[label]
	return r, ok
}

// Labels returns the recognized labels in declaration order.
func (t *Table) Labels() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Entries returns the reactions sorted by label.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.reactions))
	for l, r := range t.reactions {
		out = append(out, Entry{Label: l, Reaction: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Len is the number of labels that have a reaction.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.reactions)
}

func (r Reaction) validate() error {
	if _, err := icons.Parse(string(r.Icon)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReaction, err)
	}
	if r.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %d Hz", ErrInvalidReaction, r.Frequency)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("%w: duration %s", ErrInvalidReaction, r.Duration)
	}
	return nil
}

// Package reactions reads and writes the label/reaction table file. The file
// is normally generated by the training tool, so it is loaded at startup
// rather than compiled in.
package reactions

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/icons"
)

// File is the on-disk layout.
//
//	labels: [Klasse1, Klasse2, Klasse3]
//	reactions:
//	  - label: Klasse1
//	    icon: heart
//	    frequency: 440
//	    duration_ms: 200
type File struct {
	Labels    []string `yaml:"labels,omitempty"`
	Reactions []Entry  `yaml:"reactions"`
}

type Entry struct {
	Label      string `yaml:"label"`
	Icon       string `yaml:"icon"`
	Frequency  int    `yaml:"frequency"`
	DurationMS int    `yaml:"duration_ms"`
}

// Parse decodes and validates a table file.
func Parse(data []byte) (*labelcue.Table, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding reaction table: %w", err)
	}
	return f.Table()
}

// Load reads the table file at path.
func Load(path string) (*labelcue.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reaction table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadOrDefault loads path, or returns the stock table when path is empty.
func LoadOrDefault(path string) (*labelcue.Table, error) {
	if path == "" {
		return labelcue.DefaultTable(), nil
	}
	return Load(path)
}

// Table converts the file into a validated table.
func (f File) Table() (*labelcue.Table, error) {
	entries := make([]labelcue.Entry, 0, len(f.Reactions))
	for i, e := range f.Reactions {
		icon, err := icons.Parse(e.Icon)
		if err != nil {
			return nil, fmt.Errorf("reaction %d (%s): %w", i, e.Label, err)
		}
		entries = append(entries, labelcue.Entry{
			Label: e.Label,
			Reaction: labelcue.Reaction{
				Icon:      icon,
				Frequency: e.Frequency,
				Duration:  time.Duration(e.DurationMS) * time.Millisecond,
			},
		})
	}
	return labelcue.NewTable(entries, f.Labels)
}

// FromTable is the inverse of File.Table.
func FromTable(t *labelcue.Table) File {
	f := File{Labels: t.Labels()}
	for _, e := range t.Entries() {
		f.Reactions = append(f.Reactions, Entry{
			Label:      e.Label,
			Icon:       string(e.Reaction.Icon),
			Frequency:  e.Reaction.Frequency,
			DurationMS: int(e.Reaction.Duration / time.Millisecond),
		})
	}
	return f
}

// Marshal encodes t in the file layout.
func Marshal(t *labelcue.Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromTable(t)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes t to path through a temporary file, so a watcher never sees a
// half-written table.
func Save(path string, t *labelcue.Table) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing reaction table: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing reaction table: %w", err)
	}
	return nil
}

// Package term draws the LED matrix and announces tones on a terminal.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/icons"
)

var (
	_ labelcue.Display = (*Display)(nil)
	_ labelcue.Speaker = (*Speaker)(nil)
)

const (
	litCell   = "██"
	unlitCell = "··"
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI styling. Off, the output is plain text.
	Color bool
	// Bell writes a BEL character with every tone.
	Bell bool
}

// Display renders to a writer. Display and Speaker created with the same
// writer share a lock, so their output never interleaves mid-line.
type Display struct {
	mu    *sync.Mutex
	w     io.Writer
	lit   lipgloss.Style
	unlit lipgloss.Style
	text  lipgloss.Style
	frame lipgloss.Style
}

// Speaker announces tones on a writer. A terminal cannot synthesize a pitch,
// so the tone is printed (and optionally belled) and logged.
type Speaker struct {
	mu   *sync.Mutex
	w    io.Writer
	bell bool
	note lipgloss.Style
	log  *zap.Logger
}

// New returns a display and speaker writing to w.
func New(w io.Writer, opts Options, log *zap.Logger) (*Display, *Speaker) {
	if log == nil {
		log = zap.NewNop()
	}
	mu := &sync.Mutex{}

	plain := lipgloss.NewStyle()
	d := &Display{
		mu:    mu,
		w:     w,
		lit:   plain,
		unlit: plain,
		text:  plain,
		frame: plain,
	}
	s := &Speaker{mu: mu, w: w, bell: opts.Bell, note: plain, log: log}

	if opts.Color {
		d.lit = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		d.unlit = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		d.text = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		d.frame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
		s.note = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	}
	return d, s
}

// ShowText prints the label on its own line.
func (d *Display) ShowText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "» %s\n", d.text.Render(text))
}

// ShowIcon prints the 5x5 matrix.
func (d *Display) ShowIcon(icon icons.Icon) {
	out := d.frame.Render(Render(icon.Pattern(), d.lit, d.unlit))

	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.w, out)
}

// PlayTone prints the tone and returns immediately.
func (s *Speaker) PlayTone(hz int, dur time.Duration) {
	s.log.Debug("tone", zap.Int("hz", hz), zap.Duration("duration", dur))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bell {
		fmt.Fprint(s.w, "\a")
	}
	fmt.Fprintln(s.w, s.note.Render(fmt.Sprintf("♪ %d Hz %s", hz, dur)))
}

// Render draws a pattern as text, one row per line.
func Render(p icons.Pattern, lit, unlit lipgloss.Style) string {
	var b strings.Builder
	for r, row := range p {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, on := range row {
			if on {
				b.WriteString(lit.Render(litCell))
			} else {
				b.WriteString(unlit.Render(unlitCell))
			}
		}
	}
	return b.String()
}

package term

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/icons"
)

func TestRender_Plain(t *testing.T) {
	plain := lipgloss.NewStyle()
	got := Render(icons.Triangle.Pattern(), plain, plain)

	want := strings.Join([]string{
		"··········",
		"····██····",
		"··██··██··",
		"██████████",
		"··········",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestDisplayAndSpeaker_Plain(t *testing.T) {
	var buf bytes.Buffer
	d, s := New(&buf, Options{}, nil)

	d.ShowText("Klasse1")
	d.ShowIcon(icons.Heart)
	s.PlayTone(440, 200*time.Millisecond)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "» Klasse1\n"))
	assert.Contains(t, out, "··██··██··\n██████████")
	assert.True(t, strings.HasSuffix(out, "♪ 440 Hz 200ms\n"))
	assert.NotContains(t, out, "\a")
}

func TestSpeaker_Bell(t *testing.T) {
	var buf bytes.Buffer
	_, s := New(&buf, Options{Bell: true}, nil)

	s.PlayTone(262, time.Second)
	assert.Equal(t, "\a♪ 262 Hz 1s\n", buf.String())
}

func TestDrivenByGate(t *testing.T) {
	var buf bytes.Buffer
	d, s := New(&buf, Options{}, nil)
	g := labelcue.NewGate(d, labelcue.NewDispatcher(labelcue.DefaultTable(), d, s, nil), nil)

	g.OnReceive("Unknown\n")
	assert.Equal(t, "» Unknown\n", buf.String())

	buf.Reset()
	g.OnReceive("  Klasse3  \n")
	g.OnReceive("Klasse3")
	assert.Equal(t, 1, strings.Count(buf.String(), "» Klasse3"))
	assert.Equal(t, 1, strings.Count(buf.String(), "♪ 523 Hz 200ms"))
}

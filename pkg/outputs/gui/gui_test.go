package gui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/icons"
)

func TestDisplay_ShowIcon(t *testing.T) {
	test.NewTempApp(t)
	d := New()

	d.ShowIcon(icons.Triangle)

	p := icons.Triangle.Pattern()
	for r, row := range p {
		for c, on := range row {
			want := unlitColor
			if on {
				want = litColor
			}
			assert.Equal(t, want, d.cells[r][c].FillColor, "cell %d,%d", r, c)
		}
	}

	d.ShowIcon(icons.None)
	assert.Equal(t, unlitColor, d.cells[3][0].FillColor)
}

func TestDisplay_ShowText(t *testing.T) {
	test.NewTempApp(t)
	d := New()

	d.ShowText("Klasse2")
	assert.Equal(t, "Klasse2", d.label.Text)

	d.ShowText("")
	assert.Empty(t, d.label.Text)
}

type tone struct {
	hz int
	d  time.Duration
}

type toneRecorder struct {
	played []tone
}

func (r *toneRecorder) PlayTone(hz int, d time.Duration) {
	r.played = append(r.played, tone{hz, d})
}

func TestSpeaker_CaptionsAndForwards(t *testing.T) {
	test.NewTempApp(t)
	d := New()
	next := &toneRecorder{}
	s := Speaker{Display: d, Next: next}

	s.PlayTone(440, 200*time.Millisecond)

	assert.Equal(t, "♪ 440 Hz 200ms", d.tone.Text)
	require.Len(t, next.played, 1)
	assert.Equal(t, tone{440, 200 * time.Millisecond}, next.played[0])
}

func TestSpeaker_NilNext(t *testing.T) {
	test.NewTempApp(t)
	d := New()

	Speaker{Display: d}.PlayTone(262, time.Second)
	assert.Equal(t, "♪ 262 Hz 1s", d.tone.Text)
}

func TestDrivenByGate(t *testing.T) {
	a := test.NewTempApp(t)
	d := New()
	w := Window(a, "labelcue", d)
	defer w.Close()

	next := &toneRecorder{}
	s := Speaker{Display: d, Next: next}
	g := labelcue.NewGate(d, labelcue.NewDispatcher(labelcue.DefaultTable(), d, s, nil), nil)

	g.OnReceive("Klasse1\n")
	g.OnReceive("Klasse1")
	g.OnReceive("Unknown")

	assert.Equal(t, "Unknown", d.label.Text)
	assert.Equal(t, "♪ 440 Hz 200ms", d.tone.Text)
	assert.Equal(t, litColor, d.cells[0][1].FillColor, "heart stays lit after an unknown label")
	assert.Len(t, next.played, 1)
}

package labelcue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGate_DuplicateIsNoOp(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	g.OnReceive("Klasse1\n")
	first := rec.Events()
	g.OnReceive("Klasse1\n")

	assert.Equal(t, first, rec.Events())
	assert.Equal(t, []string{"text Klasse1", "icon heart", "tone 440 200ms"}, first)
}

func TestGate_NonAdjacentRepeatsPass(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	g.OnReceive("Klasse1")
	g.OnReceive("Klasse2")
	g.OnReceive("Klasse1")

	assert.Equal(t, []string{
		"text Klasse1", "icon heart", "tone 440 200ms",
		"text Klasse2", "icon square", "tone 262 200ms",
		"text Klasse1", "icon heart", "tone 440 200ms",
	}, rec.Events())
}

func TestGate_Scenario(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	g.OnReceive("Klasse1\n")
	g.OnReceive("Klasse1\n")
	g.OnReceive("Klasse2\n")

	assert.Equal(t, []string{
		"text Klasse1", "icon heart", "tone 440 200ms",
		"text Klasse2", "icon square", "tone 262 200ms",
	}, rec.Events())
	assert.Equal(t, "Klasse2", g.Last())
}

func TestGate_Trims(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	g.OnReceive("  Klasse3  \n")

	assert.Equal(t, []string{"text Klasse3", "icon triangle", "tone 523 200ms"}, rec.Events())
	assert.Equal(t, "Klasse3", g.Last())
}

func TestGate_UnknownLabelDisplaysOnly(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	g.OnReceive("Unknown\n")

	assert.Equal(t, []string{"text Unknown"}, rec.Events())
	assert.Equal(t, "Unknown", g.Last())
}

func TestGate_CaseSensitive(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	g.OnReceive("Klasse1")
	g.OnReceive("klasse1")

	assert.Equal(t, []string{"text Klasse1", "icon heart", "tone 440 200ms", "text klasse1"}, rec.Events())
}

func TestGate_EmptyLines(t *testing.T) {
	g, rec := NewRecordingGate(DefaultTable())

	// Nothing accepted yet, so an empty line matches the initial state.
	g.OnReceive("   \n")
	assert.Empty(t, rec.Events())
	assert.Equal(t, "", g.Last())

	g.OnReceive("Klasse2")
	rec.Reset()

	// Differs from the last label: displayed and remembered, never dispatched.
	g.OnReceive(" \t\r\n")
	assert.Equal(t, []string{"text "}, rec.Events())
	assert.Equal(t, "", g.Last())

	// The same label again after an empty line is accepted.
	g.OnReceive("Klasse2")
	assert.Equal(t, []string{"text ", "text Klasse2", "icon square", "tone 262 200ms"}, rec.Events())
}

func TestGate_TwiceIsAtMostOneDispatch(t *testing.T) {
	for _, l := range []string{"Klasse1", "Klasse2", "Klasse3", "Unknown", "x y"} {
		g, rec := NewRecordingGate(DefaultTable())
		g.OnReceive(l)
		n := len(rec.Events())
		g.OnReceive(l)
		assert.Len(t, rec.Events(), n, l)
		assert.Equal(t, "text "+l, rec.Events()[0], l)
	}
}

package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Icon{
		"heart":       Heart,
		"Heart":       Heart,
		" SQUARE ":    Square,
		"small-heart": SmallHeart,
		"arrow up":    ArrowUp,
		"triangle":    Triangle,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("giraffe")
	assert.ErrorIs(t, err, ErrUnknownIcon)

	_, err = Parse("  ")
	assert.ErrorIs(t, err, ErrUnknownIcon)
}

func TestPatterns(t *testing.T) {
	for _, name := range Names() {
		p := Icon(name).Pattern()
		assert.Greater(t, p.Lit(), 0, "%s should light at least one LED", name)
	}
	assert.Equal(t, 0, None.Pattern().Lit())
	assert.Equal(t, 0, Icon("bogus").Pattern().Lit())

	heart := Heart.Pattern()
	assert.False(t, heart[0][0])
	assert.True(t, heart[0][1])
	assert.True(t, heart[4][2])
	assert.Equal(t, 16, Square.Pattern().Lit())
}

func TestNames_SortedWithoutNone(t *testing.T) {
	names := Names()
	assert.IsIncreasing(t, names)
	assert.NotContains(t, names, "")
	assert.Contains(t, names, "heart")
}

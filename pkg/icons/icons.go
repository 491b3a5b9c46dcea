// Package icons holds the named 5x5 images that can be shown on the LED matrix.
package icons

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Size is the width and height of the matrix in LEDs.
const Size = 5

// Pattern is a lit/unlit bitmap, indexed [row][column].
type Pattern [Size][Size]bool

// Icon identifies one of the built-in images.
type Icon string

const (
	None        Icon = ""
	Heart       Icon = "heart"
	SmallHeart  Icon = "small_heart"
	Square      Icon = "square"
	SmallSquare Icon = "small_square"
	Triangle    Icon = "triangle"
	Diamond     Icon = "diamond"
	Happy       Icon = "happy"
	Sad         Icon = "sad"
	Yes         Icon = "yes"
	No          Icon = "no"
	Chessboard  Icon = "chessboard"
	ArrowUp     Icon = "arrow_up"
	ArrowDown   Icon = "arrow_down"
)

var ErrUnknownIcon = errors.New("unknown icon")

// Rows are written the way they look on the board: '#' is lit.
var patterns = map[Icon]Pattern{
	None: mustPattern(
		".....",
		".....",
		".....",
		".....",
		".....",
	),
	Heart: mustPattern(
		".#.#.",
		"#####",
		"#####",
		".###.",
		"..#..",
	),
	SmallHeart: mustPattern(
		".....",
		".#.#.",
		".###.",
		"..#..",
		".....",
	),
	Square: mustPattern(
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	),
	SmallSquare: mustPattern(
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	),
	Triangle: mustPattern(
		".....",
		"..#..",
		".#.#.",
		"#####",
		".....",
	),
	Diamond: mustPattern(
		"..#..",
		".#.#.",
		"#...#",
		".#.#.",
		"..#..",
	),
	Happy: mustPattern(
		".....",
		".#.#.",
		".....",
		"#...#",
		".###.",
	),
	Sad: mustPattern(
		".....",
		".#.#.",
		".....",
		".###.",
		"#...#",
	),
	Yes: mustPattern(
		".....",
		"....#",
		"...#.",
		"#.#..",
		".#...",
	),
	No: mustPattern(
		"#...#",
		".#.#.",
		"..#..",
		".#.#.",
		"#...#",
	),
	Chessboard: mustPattern(
		".#.#.",
		"#.#.#",
		".#.#.",
		"#.#.#",
		".#.#.",
	),
	ArrowUp: mustPattern(
		"..#..",
		".###.",
		"#.#.#",
		"..#..",
		"..#..",
	),
	ArrowDown: mustPattern(
		"..#..",
		"..#..",
		"#.#.#",
		".###.",
		"..#..",
	),
}

// Parse resolves a configured icon name. Matching ignores case and accepts
// '-' or ' ' in place of '_'.
func Parse(name string) (Icon, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	icon := Icon(key)
	if icon == None {
		return None, fmt.Errorf("%w: empty name", ErrUnknownIcon)
	}
	if _, ok := patterns[icon]; !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownIcon, name)
	}
	return icon, nil
}

// Pattern returns the bitmap for the icon. Unknown icons render blank.
func (i Icon) Pattern() Pattern {
	return patterns[i]
}

func (i Icon) String() string {
	if i == None {
		return "none"
	}
	return string(i)
}

// Names lists every drawable icon, sorted.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for icon := range patterns {
		if icon == None {
			continue
		}
		names = append(names, string(icon))
	}
	sort.Strings(names)
	return names
}

// Lit counts the lit LEDs of the pattern.
func (p Pattern) Lit() int {
	n := 0
	for _, row := range p {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

func mustPattern(rows ...string) Pattern {
	var p Pattern
	if len(rows) != Size {
		panic(fmt.Sprintf("icons: want %d rows, got %d", Size, len(rows)))
	}
	for r, row := range rows {
		if len(row) != Size {
			panic(fmt.Sprintf("icons: row %d has %d columns", r, len(row)))
		}
		for c := 0; c < Size; c++ {
			p[r][c] = row[c] == '#'
		}
	}
	return p
}

// Package gui shows the LED matrix in a desktop window.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/icons"
)

var (
	_ labelcue.Display = (*Display)(nil)
	_ labelcue.Speaker = Speaker{}
)

const cellSize = 36

var (
	litColor   = color.NRGBA{R: 0xe0, G: 0x20, B: 0x20, A: 0xff}
	unlitColor = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

// Display is a 5x5 grid of rectangles with the last label underneath.
// Updates are scheduled onto the fyne event loop, so calls return at once.
type Display struct {
	cells [icons.Size][icons.Size]*canvas.Rectangle
	label *widget.Label
	tone  *widget.Label
	grid  *fyne.Container
}

func New() *Display {
	d := &Display{
		label: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		tone:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	}

	objects := make([]fyne.CanvasObject, 0, icons.Size*icons.Size)
	for r := range d.cells {
		for c := range d.cells[r] {
			rect := canvas.NewRectangle(unlitColor)
			rect.SetMinSize(fyne.NewSize(cellSize, cellSize))
			rect.CornerRadius = 4
			d.cells[r][c] = rect
			objects = append(objects, rect)
		}
	}
	d.grid = container.NewGridWithColumns(icons.Size, objects...)
	return d
}

// Content is the widget tree to place in a window.
func (d *Display) Content() fyne.CanvasObject {
	return container.NewVBox(
		container.NewCenter(d.grid),
		d.label,
		d.tone,
	)
}

func (d *Display) ShowText(text string) {
	fyne.Do(func() {
		d.label.SetText(text)
	})
}

func (d *Display) ShowIcon(icon icons.Icon) {
	p := icon.Pattern()
	fyne.Do(func() {
		for r, row := range p {
			for c, on := range row {
				fill := color.Color(unlitColor)
				if on {
					fill = litColor
				}
				d.cells[r][c].FillColor = fill
				d.cells[r][c].Refresh()
			}
		}
	})
}

// ShowTone mirrors the last tone under the matrix, so a Speaker can report
// what it played in the same window.
func (d *Display) ShowTone(caption string) {
	fyne.Do(func() {
		d.tone.SetText(caption)
	})
}

// Window builds the application window around the display.
func Window(app fyne.App, title string, d *Display) fyne.Window {
	w := app.NewWindow(title)
	w.SetContent(d.Content())
	w.Resize(fyne.NewSize(cellSize*icons.Size+80, cellSize*icons.Size+120))
	return w
}

// Speaker captions each tone in the window and passes it on to Next, which
// actually produces the sound. Next may be nil.
type Speaker struct {
	Display *Display
	Next    labelcue.Speaker
}

func (s Speaker) PlayTone(hz int, d time.Duration) {
	s.Display.ShowTone(fmt.Sprintf("♪ %d Hz %s", hz, d))
	if s.Next != nil {
		s.Next.PlayTone(hz, d)
	}
}

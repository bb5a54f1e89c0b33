// Package tcellgrid draws grid frames onto a terminal screen.
package tcellgrid

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/render/textgrid"
)

// Theme styles the header strip and alternating body rows.
type Theme struct {
	Header tcell.Style
	Even   tcell.Style
	Odd    tcell.Style
}

var DefaultTheme = Theme{
	Header: tcell.StyleDefault.Reverse(true).Bold(true),
	Even:   tcell.StyleDefault,
	Odd:    tcell.StyleDefault.Background(tcell.ColorDarkBlue),
}

// Renderer paints descriptors onto Screen. It implements both grid
// renderer interfaces with textgrid.Box nodes.
type Renderer struct {
	Screen tcell.Screen
	Theme  Theme

	geo textgrid.Geometry
}

// Draw clears the screen, paints frame and shows it.
func Draw(screen tcell.Screen, theme Theme, frame grid.Frame, unitsPerColumn, unitsPerRow float64) {
	r := &Renderer{
		Screen: screen,
		Theme:  theme,
		geo:    textgrid.NewGeometry(frame, unitsPerColumn, unitsPerRow),
	}
	screen.Clear()
	grid.Materialize[textgrid.Box](frame, r, r)
	screen.Show()
}

func (r *Renderer) RenderHeader(d grid.HeaderDescriptor) textgrid.Box {
	b := r.geo.HeaderBox(d)
	r.fill(b, 0, r.geo.HeaderRows, r.Theme.Header)
	return b
}

func (r *Renderer) RenderCell(d grid.CellDescriptor) textgrid.Box {
	b := r.geo.CellBox(d)
	st := r.Theme.Even
	if d.RowIndex%2 == 1 {
		st = r.Theme.Odd
	}
	r.fill(b, r.geo.HeaderRows, r.geo.Height, st)
	return b
}

// fill paints b clipped to rows [top, bottom) of the container and to the
// screen.
func (r *Renderer) fill(b textgrid.Box, top, bottom int, st tcell.Style) {
	width, height := r.Screen.Size()
	width = min(width, r.geo.Width)
	bottom = min(bottom, height)

	visible := func(x, y int) bool {
		return y >= top && y < bottom && x >= 0 && x < width
	}
	for y := b.Y; y < b.Y+b.Height; y++ {
		for x := b.X; x < b.X+b.Width; x++ {
			if visible(x, y) {
				r.Screen.SetContent(x, y, ' ', nil, st)
			}
		}
		if x := b.X + b.Width - 1; visible(x, y) {
			r.Screen.SetContent(x, y, '│', nil, st)
		}
	}

	x := b.X
	for _, ch := range textgrid.Label(b) {
		w := runewidth.RuneWidth(ch)
		if visible(x, b.Y) && visible(x+w-1, b.Y) {
			r.Screen.SetContent(x, b.Y, ch, nil, st)
		}
		x += w
	}
}

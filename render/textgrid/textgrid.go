// Package textgrid draws grid frames onto a character canvas. It backs
// snapshots, dumps and tests where a terminal is not available.
package textgrid

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/style"
)

// Box is a rectangle on the canvas in character cells.
type Box struct {
	X, Y          int
	Width, Height int
	Label         string
}

// wideTail fills the cell covered by the right half of a wide rune.
const wideTail = rune(0)

// Geometry scales engine units to character cells. The header strip
// occupies the top HeaderRows rows and the body the rest, both offset by
// the scroll position.
type Geometry struct {
	UnitsPerColumn float64
	UnitsPerRow    float64
	Scroll         grid.ScrollState
	HeaderRows     int
	Width          int
	Height         int
}

func NewGeometry(frame grid.Frame, unitsPerColumn, unitsPerRow float64) Geometry {
	return Geometry{
		UnitsPerColumn: unitsPerColumn,
		UnitsPerRow:    unitsPerRow,
		Scroll:         frame.Scroll,
		HeaderRows:     units(frame.Layout.Header.Height, unitsPerRow),
		Width:          units(frame.Layout.OuterWidth, unitsPerColumn),
		Height:         units(frame.Layout.OuterHeight, unitsPerRow),
	}
}

func units(v, per float64) int {
	return int(math.Round(v / per))
}

func (g Geometry) box(pos *style.Position, label string) Box {
	return Box{
		X:      units(pos.Left-g.Scroll.Left, g.UnitsPerColumn),
		Y:      units(pos.Top, g.UnitsPerRow),
		Width:  units(pos.Width, g.UnitsPerColumn),
		Height: units(pos.Height, g.UnitsPerRow),
		Label:  label,
	}
}

// HeaderBox places a header in the sticky strip.
func (g Geometry) HeaderBox(d grid.HeaderDescriptor) Box {
	return g.box(d.Style, d.Key)
}

// CellBox places a body cell below the header strip.
func (g Geometry) CellBox(d grid.CellDescriptor) Box {
	b := g.box(d.Style, d.Key)
	b.Y += g.HeaderRows - units(g.Scroll.Top, g.UnitsPerRow)
	return b
}

// Canvas is a rune buffer the size of the scroll container.
type Canvas struct {
	Geometry
	cells [][]rune
}

// New sizes a blank canvas for frame.
func New(frame grid.Frame, unitsPerColumn, unitsPerRow float64) *Canvas {
	c := &Canvas{Geometry: NewGeometry(frame, unitsPerColumn, unitsPerRow)}
	c.cells = make([][]rune, c.Height)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", c.Width))
	}
	return c
}

// Draw renders every header and cell of frame, labelling them with their
// keys, and returns the canvas.
func Draw(frame grid.Frame, unitsPerColumn, unitsPerRow float64) *Canvas {
	c := New(frame, unitsPerColumn, unitsPerRow)
	grid.Materialize[Box](frame, c, c)
	return c
}

func (c *Canvas) RenderHeader(d grid.HeaderDescriptor) Box {
	b := c.HeaderBox(d)
	c.paint(b, 0, c.HeaderRows)
	return b
}

func (c *Canvas) RenderCell(d grid.CellDescriptor) Box {
	b := c.CellBox(d)
	c.paint(b, c.HeaderRows, c.Height)
	return b
}

// Label truncates b's label to fit before its right edge separator.
func Label(b Box) string {
	if b.Width <= 1 {
		return ""
	}
	return runewidth.Truncate(b.Label, b.Width-1, "")
}

// paint draws b clipped to rows [top, bottom): the label on its first row
// and a separator down its right edge.
func (c *Canvas) paint(b Box, top, bottom int) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	x := b.X
	for _, r := range Label(b) {
		w := runewidth.RuneWidth(r)
		switch {
		case w == 2 && (x < 0 || x+1 >= c.Width):
			// half visible wide runes become blanks
			c.set(x, b.Y, top, bottom, ' ')
			c.set(x+1, b.Y, top, bottom, ' ')
		case w == 2:
			c.set(x, b.Y, top, bottom, r)
			c.set(x+1, b.Y, top, bottom, wideTail)
		default:
			c.set(x, b.Y, top, bottom, r)
		}
		x += w
	}
	for y := b.Y; y < b.Y+b.Height; y++ {
		c.set(b.X+b.Width-1, y, top, bottom, '|')
	}
}

func (c *Canvas) set(x, y, top, bottom int, r rune) {
	if y < top || y >= bottom || x < 0 || x >= c.Width {
		return
	}
	c.cells[y][x] = r
}

// Lines returns the canvas rows with trailing blanks removed.
func (c *Canvas) Lines() []string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		var sb strings.Builder
		for _, r := range row {
			if r != wideTail {
				sb.WriteRune(r)
			}
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Package style memoizes the absolute positions of grid cells and headers.
package style

import "github.com/on-the-ground/gridview/axis"

// Position is the absolute placement of a cell inside the grid content area.
// Values handed out by a Cache must be treated as immutable.
type Position struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

func (p Position) Bottom() float64 { return p.Top + p.Height }
func (p Position) Right() float64  { return p.Left + p.Width }

// Measurer reads the metadata of one axis, measuring lazily.
type Measurer interface {
	Get(index int) axis.Metadata
}

// Options tune a Cache.
type Options struct {
	// MaxEntries bounds the number of resident positions. Zero keeps every
	// position for the life of the cache.
	MaxEntries int
}

type Stats struct {
	Hits      int
	Misses    int
	Entries   int
	Rotations int
}

// headerRow is the major key reserved for header positions.
const headerRow = -1

// Cache memoizes cell and header positions. Asking twice for the same key
// returns the same pointer until the entry is invalidated.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	rows         Measurer
	columns      Measurer
	table        *Table[*Position]
	headerHeight float64
	hits         int
	misses       int
}

func NewCache(rows, columns Measurer, opts Options) *Cache {
	return &Cache{
		rows:    rows,
		columns: columns,
		table:   NewTable[*Position](opts.MaxEntries),
	}
}

// Cell returns the position of the body cell at (row, column).
func (c *Cache) Cell(row, column int) *Position {
	if p, ok := c.table.Load(row, column); ok {
		c.hits++
		return p
	}
	c.misses++
	r := c.rows.Get(row)
	col := c.columns.Get(column)
	p := &Position{
		Top:    r.Offset,
		Height: r.Size,
		Left:   col.Offset,
		Width:  col.Size,
	}
	c.table.Store(row, column, p)
	return p
}

// Header returns the position of the header cell above column. A change of
// headerHeight drops every cached header position first.
func (c *Cache) Header(column int, headerHeight float64) *Position {
	if headerHeight != c.headerHeight {
		c.dropHeaders()
		c.headerHeight = headerHeight
	}
	if p, ok := c.table.Load(headerRow, column); ok {
		c.hits++
		return p
	}
	c.misses++
	col := c.columns.Get(column)
	p := &Position{
		Top:    0,
		Height: headerHeight,
		Left:   col.Offset,
		Width:  col.Size,
	}
	c.table.Store(headerRow, column, p)
	return p
}

// InvalidateRows drops body positions; header positions do not depend on rows.
func (c *Cache) InvalidateRows() {
	c.table.DeleteMajor(func(major int) bool { return major != headerRow })
}

// InvalidateColumns drops every position.
func (c *Cache) InvalidateColumns() {
	c.table.Clear()
}

func (c *Cache) dropHeaders() {
	c.table.DeleteMajor(func(major int) bool { return major == headerRow })
}

func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Entries:   c.table.Len(),
		Rotations: c.table.Rotations(),
	}
}

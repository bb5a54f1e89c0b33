package axis

import (
	"errors"
	"fmt"
	"math"
)

// Kind selects one of the two independent dimensions of a grid.
type Kind int

const (
	Rows Kind = iota
	Columns
)

func (k Kind) String() string {
	switch k {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("axis(%d)", int(k))
	}
}

// SizeFunc returns the extent of the item at index along an axis.
// It must be pure: the cache calls it at most once per index.
type SizeFunc func(index int) float64

// Metadata is the measured position of one item along an axis.
type Metadata struct {
	Offset float64
	Size   float64
}

// End returns the trailing edge of the item.
func (m Metadata) End() float64 {
	return m.Offset + m.Size
}

var (
	ErrIndexOutOfRange = errors.New("axis: index out of range")
	ErrInvalidSize     = errors.New("axis: size must be positive and finite")
)

// Stats counts the work an axis cache has done since its last reset.
type Stats struct {
	SizeCalls int // invocations of the size function
	Probes    int // metadata reads issued by StartIndex
}

// Cache lazily measures items along one axis. Items are measured in order,
// so the measured set is always the prefix [0, LastMeasuredIndex].
//
// A Cache is not safe for concurrent use.
type Cache struct {
	count        int
	sizeFn       SizeFunc
	items        []Metadata
	lastMeasured int
	stats        Stats
}

// NewCache returns an empty cache for count items sized by sizeFn.
func NewCache(count int, sizeFn SizeFunc) *Cache {
	c := &Cache{}
	c.Reset(count, sizeFn)
	return c
}

// Reset drops every measurement and rebinds the cache to a new item count
// and size function.
func (c *Cache) Reset(count int, sizeFn SizeFunc) {
	if count < 0 {
		count = 0
	}
	c.count = count
	c.sizeFn = sizeFn
	c.items = c.items[:0]
	c.lastMeasured = -1
	c.stats = Stats{}
}

// Count returns the number of items on the axis.
func (c *Cache) Count() int {
	return c.count
}

// LastMeasuredIndex returns the highest measured index, or -1.
func (c *Cache) LastMeasuredIndex() int {
	return c.lastMeasured
}

func (c *Cache) Stats() Stats {
	return c.stats
}

// MeasureUpTo measures every unmeasured index up to and including index.
// It panics with ErrIndexOutOfRange when index is outside [0, Count()-1]
// and with ErrInvalidSize when the size function returns a non-positive or
// non-finite value.
func (c *Cache) MeasureUpTo(index int) {
	if index < 0 || index >= c.count {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, c.count))
	}
	if index <= c.lastMeasured {
		return
	}

	offset := 0.0
	if c.lastMeasured >= 0 {
		offset = c.items[c.lastMeasured].End()
	}
	for i := c.lastMeasured + 1; i <= index; i++ {
		size := c.sizeFn(i)
		c.stats.SizeCalls++
		if !(size > 0) || math.IsInf(size, 0) {
			panic(fmt.Errorf("%w: index %d has size %v", ErrInvalidSize, i, size))
		}
		c.items = append(c.items, Metadata{Offset: offset, Size: size})
		offset += size
	}
	c.lastMeasured = index
}

// Get returns the metadata of index, measuring it first if needed.
func (c *Cache) Get(index int) Metadata {
	c.MeasureUpTo(index)
	return c.items[index]
}

// MeasuredExtent returns the total extent of the measured prefix.
func (c *Cache) MeasuredExtent() float64 {
	if c.lastMeasured < 0 {
		return 0
	}
	return c.items[c.lastMeasured].End()
}

// EstimatedTotalExtent approximates the full axis extent, counting each
// unmeasured item as estimate. It is exact once the whole axis is measured.
func (c *Cache) EstimatedTotalExtent(estimate float64) float64 {
	unmeasured := c.count - c.lastMeasured - 1
	return c.MeasuredExtent() + float64(unmeasured)*estimate
}

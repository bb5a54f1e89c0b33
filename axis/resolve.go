package axis

// Range is an inclusive span of item indices. The empty range has Stop < Start.
type Range struct {
	Start int
	Stop  int
}

// EmptyRange is returned for axes without items.
var EmptyRange = Range{Start: 0, Stop: -1}

func (r Range) Empty() bool {
	return r.Stop < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Stop - r.Start + 1
}

// Contains reports whether index lies in the range.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index <= r.Stop
}

// Overscan is the number of extra items rendered on each side of the
// strictly visible range.
type Overscan struct {
	Backward int
	Forward  int
}

// StartIndex returns the largest index whose offset does not exceed target.
//
// When target lies inside the measured prefix it binary-searches that prefix.
// Otherwise it probes forward with a doubling step from the last measured
// index and binary-searches the bracket the probe lands in, so a long jump
// costs O(log distance) probes instead of a linear walk.
func (c *Cache) StartIndex(target float64) int {
	if c.count == 0 {
		return 0
	}
	lastOffset := 0.0
	if c.lastMeasured > 0 {
		lastOffset = c.items[c.lastMeasured].Offset
	}
	if lastOffset > target {
		return c.binarySearch(0, c.lastMeasured, target)
	}
	return c.exponentialSearch(max(0, c.lastMeasured), target)
}

func (c *Cache) offsetAt(index int) float64 {
	c.stats.Probes++
	return c.Get(index).Offset
}

func (c *Cache) binarySearch(low, high int, target float64) int {
	for low <= high {
		mid := low + (high-low)/2
		offset := c.offsetAt(mid)
		switch {
		case offset == target:
			return mid
		case offset > target:
			high = mid - 1
		default:
			low = mid + 1
		}
	}
	if low > 0 {
		return low - 1
	}
	return 0
}

func (c *Cache) exponentialSearch(index int, target float64) int {
	step := 1
	for index < c.count && c.offsetAt(index) < target {
		index += step
		step *= 2
	}
	return c.binarySearch(index/2, min(index, c.count-1), target)
}

// StopIndex returns the last index intersecting the viewport that begins at
// scrollOffset and spans extent, starting the walk at start. The partially
// visible trailing item is included.
func (c *Cache) StopIndex(start int, scrollOffset, extent float64) int {
	limit := scrollOffset + extent
	stop := start
	reached := c.Get(stop).End()
	for stop < c.count-1 && reached < limit {
		stop++
		reached += c.Get(stop).Size
	}
	return stop
}

// VisibleRange resolves the items intersecting [scrollOffset, scrollOffset+extent)
// and pads the result by overscan, clamped to the axis bounds.
func (c *Cache) VisibleRange(scrollOffset, extent float64, overscan Overscan) Range {
	if c.count == 0 {
		return EmptyRange
	}
	if extent < 0 {
		extent = 0
	}
	start := c.StartIndex(scrollOffset)
	stop := c.StopIndex(start, scrollOffset, extent)
	return Range{
		Start: max(0, start-overscan.Backward),
		Stop:  max(0, min(c.count-1, stop+overscan.Forward)),
	}
}

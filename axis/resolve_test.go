package axis_test

import (
	"math/bits"
	"testing"

	"github.com/on-the-ground/gridview/axis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(count int, size float64) *axis.Cache {
	return axis.NewCache(count, func(int) float64 { return size })
}

func TestVisibleRange_UniformFromTop(t *testing.T) {
	c := uniform(10000, 50)

	r := c.VisibleRange(0, 400, axis.Overscan{})
	assert.Equal(t, axis.Range{Start: 0, Stop: 7}, r)
	assert.Equal(t, 8, r.Len())
}

func TestVisibleRange_PartialTrailingItemIncluded(t *testing.T) {
	c := uniform(10000, 50)

	r := c.VisibleRange(25, 400, axis.Overscan{})
	assert.Equal(t, axis.Range{Start: 0, Stop: 8}, r)
}

func TestVisibleRange_OverscanIsClamped(t *testing.T) {
	c := uniform(20, 50)

	r := c.VisibleRange(0, 400, axis.Overscan{Backward: 10, Forward: 10})
	assert.Equal(t, axis.Range{Start: 0, Stop: 17}, r)

	r = c.VisibleRange(600, 400, axis.Overscan{Backward: 3, Forward: 10})
	assert.Equal(t, axis.Range{Start: 9, Stop: 19}, r)
}

func TestVisibleRange_EmptyAxis(t *testing.T) {
	c := uniform(0, 50)

	r := c.VisibleRange(100, 400, axis.Overscan{Backward: 10, Forward: 10})
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, c.Stats().SizeCalls)
}

func TestVisibleRange_SingleItem(t *testing.T) {
	c := uniform(1, 50)

	assert.Equal(t, axis.Range{Start: 0, Stop: 0}, c.VisibleRange(0, 400, axis.Overscan{Forward: 10}))
	assert.Equal(t, axis.Range{Start: 0, Stop: 0}, c.VisibleRange(1000, 400, axis.Overscan{}))
}

func TestStartIndex_ExactOffsetTie(t *testing.T) {
	c := uniform(100, 50)

	assert.Equal(t, 4, c.StartIndex(200))
	assert.Equal(t, 4, c.StartIndex(249))
	assert.Equal(t, 5, c.StartIndex(250))
}

func TestStartIndex_BinarySearchWithinMeasuredPrefix(t *testing.T) {
	sizes := []float64{10, 20, 30, 40, 50, 60}
	c := axis.NewCache(len(sizes), func(i int) float64 { return sizes[i] })
	c.MeasureUpTo(5) // offsets 0 10 30 60 100 150
	calls := c.Stats().SizeCalls

	assert.Equal(t, 0, c.StartIndex(0))
	assert.Equal(t, 2, c.StartIndex(45))
	assert.Equal(t, 3, c.StartIndex(60))
	assert.Equal(t, 4, c.StartIndex(149))
	assert.Equal(t, calls, c.Stats().SizeCalls, "prefix search must not measure")
}

func TestStartIndex_ExponentialJump(t *testing.T) {
	calls := 0
	c := axis.NewCache(100000, countingSize(50, &calls))

	start := c.StartIndex(500000)
	require.Equal(t, 10000, start)

	// probes: one doubling step per bit of distance, then a binary search
	// over a bracket no wider than the last step
	logDistance := bits.Len(uint(start))
	assert.LessOrEqual(t, c.Stats().Probes, 2*logDistance+2)
	// the prefix up to the final probe is measured once, never beyond it
	assert.LessOrEqual(t, calls, 2*start+1)
	assert.Equal(t, calls, c.LastMeasuredIndex()+1)
}

func TestStartIndex_JumpPastEndClampsToLast(t *testing.T) {
	c := uniform(10, 50)

	assert.Equal(t, 9, c.StartIndex(1e9))
	assert.Equal(t, axis.Range{Start: 9, Stop: 9}, c.VisibleRange(1e9, 400, axis.Overscan{}))
}

func TestStartIndex_HeterogeneousSizes(t *testing.T) {
	sizes := make([]float64, 1000)
	for i := range sizes {
		sizes[i] = float64(25 + (i*37)%50)
	}
	c := axis.NewCache(len(sizes), func(i int) float64 { return sizes[i] })

	offsets := make([]float64, len(sizes))
	for i := 1; i < len(sizes); i++ {
		offsets[i] = offsets[i-1] + sizes[i-1]
	}
	for _, target := range []float64{0, 1, 333, 4096, 20000, offsets[500], offsets[999] + 1} {
		want := 0
		for i, o := range offsets {
			if o <= target {
				want = i
			}
		}
		assert.Equal(t, want, c.StartIndex(target), "target %v", target)
	}
}

func TestRange_Contains(t *testing.T) {
	r := axis.Range{Start: 3, Stop: 5}
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.False(t, axis.EmptyRange.Contains(0))
}

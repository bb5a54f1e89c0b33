package grid

import (
	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/style"
)

// Phase is the interaction state of a viewport.
type Phase int

const (
	Idle Phase = iota
	Interacting
)

func (p Phase) String() string {
	if p == Interacting {
		return "interacting"
	}
	return "idle"
}

// ScrollState is the clamped scroll position of the viewport.
type ScrollState struct {
	Top         float64
	Left        float64
	Interacting bool
}

func (s ScrollState) Phase() Phase {
	if s.Interacting {
		return Interacting
	}
	return Idle
}

// ScrollEvent is what a host scroll source reports: the raw offsets plus
// the viewport and scrollable extents used to clamp them.
type ScrollEvent struct {
	Top              float64
	Left             float64
	ViewportHeight   float64
	ViewportWidth    float64
	ScrollableHeight float64
	ScrollableWidth  float64
}

// CellDescriptor describes one body cell to materialize.
type CellDescriptor struct {
	RowIndex    int
	ColumnIndex int
	Interacting bool
	Key         string
	Style       *style.Position
}

// HeaderDescriptor describes one column header to materialize.
type HeaderDescriptor struct {
	ColumnIndex int
	Interacting bool
	Data        any
	Key         string
	Style       *style.Position
}

// Box is a strip of the scroll container, positioned from its top edge.
type Box struct {
	Top    float64
	Height float64
	Width  float64
}

// Layout sizes the host scroll container. The header strip sticks to the
// top of the viewport; the body sits below it and spans the estimated
// content extent so the host scrollbar reflects the whole grid.
type Layout struct {
	OuterHeight float64
	OuterWidth  float64
	Header      Box
	Body        Box
	// PointerEvents is false while the viewport is interacting.
	PointerEvents bool
}

// Frame is the output of one render pass.
type Frame struct {
	Cells   []CellDescriptor
	Headers []HeaderDescriptor

	Rows    axis.Range
	Columns axis.Range

	EstimatedTotalWidth  float64
	EstimatedTotalHeight float64

	Scroll ScrollState
	Layout Layout
}

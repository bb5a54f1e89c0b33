package grid

// CellRenderer turns a body cell descriptor into a display node.
type CellRenderer[N any] interface {
	RenderCell(CellDescriptor) N
}

// HeaderRenderer turns a header descriptor into a display node.
type HeaderRenderer[N any] interface {
	RenderHeader(HeaderDescriptor) N
}

// CellRenderFunc adapts a function to CellRenderer.
type CellRenderFunc[N any] func(CellDescriptor) N

func (f CellRenderFunc[N]) RenderCell(d CellDescriptor) N { return f(d) }

// HeaderRenderFunc adapts a function to HeaderRenderer.
type HeaderRenderFunc[N any] func(HeaderDescriptor) N

func (f HeaderRenderFunc[N]) RenderHeader(d HeaderDescriptor) N { return f(d) }

// Materialize hands every descriptor of frame to its renderer, in frame
// order. A nil headers renderer skips the header strip.
func Materialize[N any](frame Frame, cells CellRenderer[N], headers HeaderRenderer[N]) (body, header []N) {
	body = make([]N, 0, len(frame.Cells))
	for _, d := range frame.Cells {
		body = append(body, cells.RenderCell(d))
	}
	if headers == nil {
		return body, nil
	}
	header = make([]N, 0, len(frame.Headers))
	for _, d := range frame.Headers {
		header = append(header, headers.RenderHeader(d))
	}
	return body, header
}

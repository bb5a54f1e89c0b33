// Package grid virtualizes a two-dimensional grid whose row heights and
// column widths are only known one index at a time.
//
// An Engine owns the lazy measurement caches of both axes, the memoized
// cell positions and the scroll state. Each RenderPass resolves the rows
// and columns intersecting the viewport, pads them by the overscan, and
// returns descriptors for just those cells and their column headers, so the
// host materializes O(viewport) elements however large the grid is.
//
//	e, err := grid.New(grid.Config{
//	    RowCount:       10000,
//	    ColumnCount:    1000,
//	    RowSize:        func(i int) float64 { return heights[i] },
//	    ColumnSize:     func(i int) float64 { return widths[i] },
//	    ViewportHeight: 400,
//	    ViewportWidth:  600,
//	})
//	if err != nil {
//	    return err
//	}
//	e.OnScroll(ev)
//	frame := e.RenderPass()
//	cells, headers := grid.Materialize[Node](frame, cellRenderer, headerRenderer)
//
// Engines are single-threaded. The engine never leaves the Interacting
// phase on its own: hosts call EndInteraction once scrolling settles.
package grid

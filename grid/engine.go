package grid

import (
	"fmt"

	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/style"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine virtualizes one grid: it owns the row and column measurement
// caches, the position cache and the scroll state, and turns them into a
// Frame of visible cells on each render pass.
//
// An Engine is not safe for concurrent use. Hosts that scroll or render
// from several goroutines go through the session package.
type Engine struct {
	cfg      Config
	settings settings

	rows    *axis.Cache
	columns *axis.Cache
	styles  *style.Cache

	scroll ScrollState
	logger *zap.Logger
}

// New builds an engine with empty caches. It reports every configuration
// problem at once.
func New(cfg Config, opts ...Option) (*Engine, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := multierr.Combine(cfg.validate(), s.validate()); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		settings: s,
		rows:     axis.NewCache(cfg.RowCount, cfg.RowSize),
		columns:  axis.NewCache(cfg.ColumnCount, cfg.ColumnSize),
		logger:   s.logger,
	}
	e.styles = style.NewCache(e.rows, e.columns, s.styleOptions)
	return e, nil
}

// Scroll returns the current scroll state.
func (e *Engine) Scroll() ScrollState {
	return e.scroll
}

// OnScroll clamps a host scroll event into the scrollable bounds and stores
// it. It returns false, doing nothing, when the clamped offsets equal the
// stored ones. Otherwise the viewport enters the Interacting phase.
func (e *Engine) OnScroll(ev ScrollEvent) bool {
	top := clamp(ev.Top, ev.ScrollableHeight-ev.ViewportHeight)
	left := clamp(ev.Left, ev.ScrollableWidth-ev.ViewportWidth)
	return e.scrollTo(top, left)
}

// ScrollToCell aligns the leading edges of row and column with the viewport
// origin, clamped to the estimated content extent. Indices outside the grid
// are caller defects and panic.
func (e *Engine) ScrollToCell(row, column int) bool {
	top, left := e.scroll.Top, e.scroll.Left
	if e.rows.Count() > 0 {
		top = e.rows.Get(row).Offset
	}
	if e.columns.Count() > 0 {
		left = e.columns.Get(column).Offset
	}
	top = clamp(top, e.EstimatedTotalExtent(axis.Rows)-e.cfg.ViewportHeight)
	left = clamp(left, e.EstimatedTotalExtent(axis.Columns)-e.cfg.ViewportWidth)
	return e.scrollTo(top, left)
}

func (e *Engine) scrollTo(top, left float64) bool {
	if top == e.scroll.Top && left == e.scroll.Left {
		return false
	}
	e.scroll = ScrollState{Top: top, Left: left, Interacting: true}
	return true
}

// EndInteraction returns the viewport to Idle. The engine has no timer of
// its own; hosts decide when scrolling has stopped (see package idle).
func (e *Engine) EndInteraction() bool {
	if !e.scroll.Interacting {
		return false
	}
	e.scroll.Interacting = false
	return true
}

// EstimatedTotalExtent approximates the content extent along kind.
func (e *Engine) EstimatedTotalExtent(kind axis.Kind) float64 {
	switch kind {
	case axis.Rows:
		return e.rows.EstimatedTotalExtent(e.settings.estimatedRowSize)
	case axis.Columns:
		return e.columns.EstimatedTotalExtent(e.settings.estimatedColumnSize)
	default:
		panic(fmt.Sprintf("grid: unknown axis %v", kind))
	}
}

// RenderPass resolves the visible ranges and describes every cell and
// header in them.
func (e *Engine) RenderPass() Frame {
	rowsBefore, colsBefore := e.rows.Stats(), e.columns.Stats()

	rowRange := e.rows.VisibleRange(e.scroll.Top, e.cfg.ViewportHeight, e.settings.overscan)
	colRange := e.columns.VisibleRange(e.scroll.Left, e.cfg.ViewportWidth, e.settings.overscan)

	e.logMeasured(axis.Rows, rowsBefore, e.rows.Stats())
	e.logMeasured(axis.Columns, colsBefore, e.columns.Stats())

	frame := Frame{
		Rows:    rowRange,
		Columns: colRange,
		Scroll:  e.scroll,
	}
	if rowRange.Empty() || colRange.Empty() {
		frame.Rows, frame.Columns = axis.EmptyRange, axis.EmptyRange
	} else {
		interacting := e.scroll.Interacting
		frame.Cells = make([]CellDescriptor, 0, rowRange.Len()*colRange.Len())
		for row := rowRange.Start; row <= rowRange.Stop; row++ {
			for col := colRange.Start; col <= colRange.Stop; col++ {
				frame.Cells = append(frame.Cells, CellDescriptor{
					RowIndex:    row,
					ColumnIndex: col,
					Interacting: interacting,
					Key:         e.settings.rowKey(row, col),
					Style:       e.styles.Cell(row, col),
				})
			}
		}
		frame.Headers = make([]HeaderDescriptor, 0, colRange.Len())
		for col := colRange.Start; col <= colRange.Stop; col++ {
			frame.Headers = append(frame.Headers, HeaderDescriptor{
				ColumnIndex: col,
				Interacting: interacting,
				Data:        e.headerData(col),
				Key:         e.settings.headerKey(col),
				Style:       e.styles.Header(col, e.settings.headerHeight),
			})
		}
	}

	// estimated extents are read after the pass so they include whatever
	// the pass just measured
	frame.EstimatedTotalHeight = e.EstimatedTotalExtent(axis.Rows)
	frame.EstimatedTotalWidth = e.EstimatedTotalExtent(axis.Columns)
	frame.Layout = e.layout(frame)
	return frame
}

func (e *Engine) headerData(col int) any {
	if col < len(e.settings.headerData) {
		return e.settings.headerData[col]
	}
	return nil
}

func (e *Engine) layout(f Frame) Layout {
	header := e.settings.headerHeight
	return Layout{
		OuterHeight:   e.cfg.ViewportHeight + header,
		OuterWidth:    e.cfg.ViewportWidth,
		Header:        Box{Top: 0, Height: header, Width: f.EstimatedTotalWidth},
		Body:          Box{Top: header, Height: f.EstimatedTotalHeight, Width: f.EstimatedTotalWidth},
		PointerEvents: !f.Scroll.Interacting,
	}
}

// Invalidate drops every measurement along kind together with the
// positions derived from it. Call it when the item count or the size
// function of that axis changes.
func (e *Engine) Invalidate(kind axis.Kind) {
	switch kind {
	case axis.Rows:
		e.rows.Reset(e.cfg.RowCount, e.cfg.RowSize)
		e.styles.InvalidateRows()
	case axis.Columns:
		e.columns.Reset(e.cfg.ColumnCount, e.cfg.ColumnSize)
		e.styles.InvalidateColumns()
	default:
		panic(fmt.Sprintf("grid: unknown axis %v", kind))
	}
	e.reclamp()
	e.logger.Debug("invalidated axis",
		zap.Stringer("axis", kind),
		zap.Int("rowCount", e.cfg.RowCount),
		zap.Int("columnCount", e.cfg.ColumnCount),
	)
}

// SetRowCount changes the number of rows and invalidates the row axis.
func (e *Engine) SetRowCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: row count %d is negative", ErrInvalidConfig, n)
	}
	if n > 0 && e.cfg.RowSize == nil {
		return fmt.Errorf("%w: row size function is required", ErrInvalidConfig)
	}
	e.cfg.RowCount = n
	e.Invalidate(axis.Rows)
	return nil
}

// SetColumnCount changes the number of columns and invalidates the column axis.
func (e *Engine) SetColumnCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: column count %d is negative", ErrInvalidConfig, n)
	}
	if n > 0 && e.cfg.ColumnSize == nil {
		return fmt.Errorf("%w: column size function is required", ErrInvalidConfig)
	}
	e.cfg.ColumnCount = n
	e.Invalidate(axis.Columns)
	return nil
}

func (e *Engine) SetRowSize(fn axis.SizeFunc) error {
	if fn == nil && e.cfg.RowCount > 0 {
		return fmt.Errorf("%w: row size function is required", ErrInvalidConfig)
	}
	e.cfg.RowSize = fn
	e.Invalidate(axis.Rows)
	return nil
}

func (e *Engine) SetColumnSize(fn axis.SizeFunc) error {
	if fn == nil && e.cfg.ColumnCount > 0 {
		return fmt.Errorf("%w: column size function is required", ErrInvalidConfig)
	}
	e.cfg.ColumnSize = fn
	e.Invalidate(axis.Columns)
	return nil
}

// SetViewport resizes the viewport. Measurements stay valid.
func (e *Engine) SetViewport(height, width float64) error {
	if err := multierr.Combine(nonNegative("viewport height", height), nonNegative("viewport width", width)); err != nil {
		return err
	}
	e.cfg.ViewportHeight, e.cfg.ViewportWidth = height, width
	e.reclamp()
	return nil
}

func (e *Engine) SetHeaderHeight(h float64) error {
	if err := nonNegative("header height", h); err != nil {
		return err
	}
	e.settings.headerHeight = h
	return nil
}

// reclamp pulls the stored offsets back inside the estimated content
// extent after the grid shrank. It does not change the interaction phase.
func (e *Engine) reclamp() {
	e.scroll.Top = clamp(e.scroll.Top, e.EstimatedTotalExtent(axis.Rows)-e.cfg.ViewportHeight)
	e.scroll.Left = clamp(e.scroll.Left, e.EstimatedTotalExtent(axis.Columns)-e.cfg.ViewportWidth)
}

// Stats reports cache activity for diagnostics.
type Stats struct {
	Rows    axis.Stats
	Columns axis.Stats
	Styles  style.Stats
}

func (e *Engine) Stats() Stats {
	return Stats{
		Rows:    e.rows.Stats(),
		Columns: e.columns.Stats(),
		Styles:  e.styles.Stats(),
	}
}

func (e *Engine) logMeasured(kind axis.Kind, before, after axis.Stats) {
	measured := after.SizeCalls - before.SizeCalls
	if measured == 0 {
		return
	}
	e.logger.Debug("measured items",
		zap.Stringer("axis", kind),
		zap.Int("measured", measured),
		zap.Int("probes", after.Probes-before.Probes),
	)
}

// clamp bounds v to [0, upper], treating a negative upper as zero.
func clamp(v, upper float64) float64 {
	if v > upper {
		v = upper
	}
	if v < 0 || v != v {
		v = 0
	}
	return v
}

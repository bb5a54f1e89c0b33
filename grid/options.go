package grid

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/style"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	DefaultOverscan      = 10
	DefaultEstimatedSize = 50
	DefaultHeaderHeight  = 50
)

var ErrInvalidConfig = errors.New("grid: invalid config")

// Config holds what a host must always supply.
type Config struct {
	RowCount    int
	ColumnCount int
	RowSize     axis.SizeFunc
	ColumnSize  axis.SizeFunc

	ViewportHeight float64
	ViewportWidth  float64
}

// RowKeyFunc derives the identity key of a body cell.
type RowKeyFunc func(row, column int) string

// HeaderKeyFunc derives the identity key of a header cell.
type HeaderKeyFunc func(column int) string

func defaultRowKey(row, column int) string {
	return strconv.Itoa(row) + ":" + strconv.Itoa(column)
}

func defaultHeaderKey(column int) string {
	return "h:" + strconv.Itoa(column)
}

type settings struct {
	overscan            axis.Overscan
	estimatedRowSize    float64
	estimatedColumnSize float64
	headerHeight        float64
	headerData          []any
	rowKey              RowKeyFunc
	headerKey           HeaderKeyFunc
	styleOptions        style.Options
	logger              *zap.Logger
}

func defaultSettings() settings {
	return settings{
		overscan:            axis.Overscan{Backward: DefaultOverscan, Forward: DefaultOverscan},
		estimatedRowSize:    DefaultEstimatedSize,
		estimatedColumnSize: DefaultEstimatedSize,
		headerHeight:        DefaultHeaderHeight,
		rowKey:              defaultRowKey,
		headerKey:           defaultHeaderKey,
		logger:              zap.NewNop(),
	}
}

// Option tunes an Engine.
type Option func(*settings)

// WithOverscan sets how many extra items are rendered behind and ahead of
// the visible range on both axes.
func WithOverscan(backward, forward int) Option {
	return func(s *settings) {
		s.overscan = axis.Overscan{Backward: backward, Forward: forward}
	}
}

// WithEstimatedSizes sets the per-item sizes assumed for unmeasured rows
// and columns when estimating the total content extent.
func WithEstimatedSizes(row, column float64) Option {
	return func(s *settings) {
		s.estimatedRowSize = row
		s.estimatedColumnSize = column
	}
}

func WithHeaderHeight(h float64) Option {
	return func(s *settings) { s.headerHeight = h }
}

// WithHeaderData attaches per-column payloads passed through to header descriptors.
func WithHeaderData(data []any) Option {
	return func(s *settings) { s.headerData = data }
}

func WithRowKey(fn RowKeyFunc) Option {
	return func(s *settings) {
		if fn != nil {
			s.rowKey = fn
		}
	}
}

func WithHeaderKey(fn HeaderKeyFunc) Option {
	return func(s *settings) {
		if fn != nil {
			s.headerKey = fn
		}
	}
}

// WithStyleOptions bounds the position cache; see style.Options.
func WithStyleOptions(opts style.Options) Option {
	return func(s *settings) { s.styleOptions = opts }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func (c Config) validate() error {
	var err error
	if c.RowCount < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: row count %d is negative", ErrInvalidConfig, c.RowCount))
	}
	if c.ColumnCount < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: column count %d is negative", ErrInvalidConfig, c.ColumnCount))
	}
	if c.RowCount > 0 && c.RowSize == nil {
		err = multierr.Append(err, fmt.Errorf("%w: row size function is required", ErrInvalidConfig))
	}
	if c.ColumnCount > 0 && c.ColumnSize == nil {
		err = multierr.Append(err, fmt.Errorf("%w: column size function is required", ErrInvalidConfig))
	}
	err = multierr.Append(err, nonNegative("viewport height", c.ViewportHeight))
	err = multierr.Append(err, nonNegative("viewport width", c.ViewportWidth))
	return err
}

func (s settings) validate() error {
	var err error
	if s.overscan.Backward < 0 || s.overscan.Forward < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: overscan %+v is negative", ErrInvalidConfig, s.overscan))
	}
	if !(s.estimatedRowSize > 0) || !(s.estimatedColumnSize > 0) {
		err = multierr.Append(err, fmt.Errorf("%w: estimated sizes must be positive", ErrInvalidConfig))
	}
	err = multierr.Append(err, nonNegative("header height", s.headerHeight))
	if s.styleOptions.MaxEntries < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: style cache bound %d is negative", ErrInvalidConfig, s.styleOptions.MaxEntries))
	}
	return err
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %v must be a finite non-negative number", ErrInvalidConfig, name, v)
	}
	return nil
}

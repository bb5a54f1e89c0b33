package config

import (
	"fmt"
	"time"

	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/internal/logging"
	"github.com/on-the-ground/gridview/style"
	"go.uber.org/multierr"
)

// GridOptions turns the grid section into engine options. Every bad value
// is reported at once.
func (b *Binding) GridOptions() ([]grid.Option, error) {
	var errs error
	intOf := func(key string) int {
		v, err := b.Int(key)
		errs = multierr.Append(errs, err)
		if err == nil && v < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s: %d is negative", key, v))
		}
		return v
	}
	floatOf := func(key string, positive bool) float64 {
		v, err := b.Float(key)
		errs = multierr.Append(errs, err)
		if err == nil && (v < 0 || positive && v == 0) {
			errs = multierr.Append(errs, fmt.Errorf("%s: %v is out of range", key, v))
		}
		return v
	}

	backward := intOf(GridOverscanBackward)
	forward := intOf(GridOverscanForward)
	row := floatOf(GridEstimateRow, true)
	column := floatOf(GridEstimateColumn, true)
	header := floatOf(GridHeaderHeight, false)
	maxEntries := intOf(GridStyleMaxEntries)
	if errs != nil {
		return nil, errs
	}

	return []grid.Option{
		grid.WithOverscan(backward, forward),
		grid.WithEstimatedSizes(row, column),
		grid.WithHeaderHeight(header),
		grid.WithStyleOptions(style.Options{MaxEntries: maxEntries}),
	}, nil
}

// SessionSettings sizes the worker queues behind sessions and hubs.
type SessionSettings struct {
	BufferSize int
	NumWorkers int
	IdleAfter  time.Duration
}

func (b *Binding) SessionOptions() (SessionSettings, error) {
	var s SessionSettings
	var err, e error

	s.BufferSize, e = b.Int(SessionHandlerBufferSize)
	err = multierr.Append(err, e)
	s.NumWorkers, e = b.Int(SessionHandlerNumWorkers)
	err = multierr.Append(err, e)
	s.IdleAfter, e = b.Duration(SessionIdleAfter)
	err = multierr.Append(err, e)
	if err != nil {
		return SessionSettings{}, err
	}

	if s.BufferSize < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: %d is negative", SessionHandlerBufferSize, s.BufferSize))
	}
	if s.NumWorkers < 1 {
		err = multierr.Append(err, fmt.Errorf("%s: need at least one worker", SessionHandlerNumWorkers))
	}
	if s.IdleAfter < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: %v is negative", SessionIdleAfter, s.IdleAfter))
	}
	if err != nil {
		return SessionSettings{}, err
	}
	return s, nil
}

func (b *Binding) LogLevel() (logging.Level, error) {
	name, err := b.String(LogLevel)
	if err != nil {
		return "", err
	}
	return logging.ParseLevel(name)
}

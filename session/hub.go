package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/internal/dispatch"
	"go.uber.org/zap"
)

// Hub hosts many named grids on a fixed pool of workers. A grid is always
// served by the worker its name hashes to, and each worker owns the engine
// map of its partition.
type Hub struct {
	queue      *dispatch.Queue
	partitions []map[string]*grid.Engine
	count      atomic.Int64
	logger     *zap.Logger
}

func NewHub(ctx context.Context, opts ...Option) *Hub {
	o := newOptions(opts)
	q := dispatch.NewPartitionedQueue(ctx, o.numWorkers, o.bufferSize)
	h := &Hub{
		queue:      q,
		partitions: make([]map[string]*grid.Engine, q.Workers()),
		logger:     o.logger,
	}
	for i := range h.partitions {
		h.partitions[i] = make(map[string]*grid.Engine)
	}
	return h
}

// Open builds an engine for name on its worker.
func (h *Hub) Open(ctx context.Context, name string, cfg grid.Config, opts ...grid.Option) error {
	_, err := hubCall(ctx, h, name, func(engines map[string]*grid.Engine) (struct{}, error) {
		if _, ok := engines[name]; ok {
			return struct{}{}, fmt.Errorf("%w: %s", ErrDuplicateGrid, name)
		}
		e, err := grid.New(cfg, opts...)
		if err != nil {
			return struct{}{}, err
		}
		engines[name] = e
		h.count.Add(1)
		h.logger.Debug("opened grid", zap.String("grid", name), zap.Int("partition", h.queue.Partition(name)))
		return struct{}{}, nil
	})
	return err
}

func (h *Hub) Scroll(ctx context.Context, name string, ev grid.ScrollEvent) (bool, error) {
	return withEngine(ctx, h, name, func(e *grid.Engine) (bool, error) {
		return e.OnScroll(ev), nil
	})
}

func (h *Hub) Render(ctx context.Context, name string) (grid.Frame, error) {
	return withEngine(ctx, h, name, func(e *grid.Engine) (grid.Frame, error) {
		return e.RenderPass(), nil
	})
}

func (h *Hub) Invalidate(ctx context.Context, name string, kind axis.Kind) error {
	return h.Do(ctx, name, func(e *grid.Engine) error {
		e.Invalidate(kind)
		return nil
	})
}

// Do runs fn on the worker owning name.
func (h *Hub) Do(ctx context.Context, name string, fn func(*grid.Engine) error) error {
	_, err := withEngine(ctx, h, name, func(e *grid.Engine) (struct{}, error) {
		return struct{}{}, fn(e)
	})
	return err
}

// Drop forgets the grid.
func (h *Hub) Drop(ctx context.Context, name string) error {
	_, err := hubCall(ctx, h, name, func(engines map[string]*grid.Engine) (struct{}, error) {
		if _, ok := engines[name]; !ok {
			return struct{}{}, fmt.Errorf("%w: %s", ErrUnknownGrid, name)
		}
		delete(engines, name)
		h.count.Add(-1)
		h.logger.Debug("dropped grid", zap.String("grid", name))
		return struct{}{}, nil
	})
	return err
}

// Len reports the number of open grids.
func (h *Hub) Len() int {
	return int(h.count.Load())
}

func (h *Hub) Close() {
	h.queue.Close()
	h.logger.Debug("closed hub", zap.Int("grids", h.Len()))
}

func withEngine[R any](ctx context.Context, h *Hub, name string, fn func(*grid.Engine) (R, error)) (R, error) {
	return hubCall(ctx, h, name, func(engines map[string]*grid.Engine) (R, error) {
		e, ok := engines[name]
		if !ok {
			var zero R
			return zero, fmt.Errorf("%w: %s", ErrUnknownGrid, name)
		}
		return fn(e)
	})
}

func hubCall[R any](ctx context.Context, h *Hub, name string, fn func(map[string]*grid.Engine) (R, error)) (R, error) {
	engines := h.partitions[h.queue.Partition(name)]
	v, err := dispatch.Call(ctx, h.queue, name, func(context.Context) (R, error) {
		return fn(engines)
	})
	if errors.Is(err, dispatch.ErrClosed) {
		err = ErrClosed
	}
	return v, err
}

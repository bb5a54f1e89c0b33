// Package session serializes access to grid engines for hosts that scroll
// and render from several goroutines.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/idle"
	"github.com/on-the-ground/gridview/internal/dispatch"
	"go.uber.org/zap"
)

var (
	ErrClosed        = errors.New("session: closed")
	ErrUnknownGrid   = errors.New("session: unknown grid")
	ErrDuplicateGrid = errors.New("session: duplicate grid")
)

// DefaultBufferSize is the job buffer of each worker.
const DefaultBufferSize = 16

type options struct {
	bufferSize int
	numWorkers int
	idleAfter  time.Duration
	onIdle     func(idle.TimeSpan)
	logger     *zap.Logger
}

type Option func(*options)

func WithBufferSize(n int) Option {
	return func(o *options) { o.bufferSize = n }
}

// WithWorkers sets the partition count of a Hub. Sessions ignore it.
func WithWorkers(n int) Option {
	return func(o *options) { o.numWorkers = n }
}

// WithIdleAfter ends the interaction phase once no scroll has changed the
// offsets for d. onIdle, when set, runs on the session worker afterwards
// with the span of the settled burst.
func WithIdleAfter(d time.Duration, onIdle func(idle.TimeSpan)) Option {
	return func(o *options) {
		o.idleAfter = d
		o.onIdle = onIdle
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) options {
	o := options{
		bufferSize: DefaultBufferSize,
		numWorkers: 1,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Session owns one engine and runs every operation on it from a single
// worker goroutine.
type Session struct {
	id     uuid.UUID
	engine *grid.Engine
	queue  *dispatch.Queue
	logger *zap.Logger

	idleAfter time.Duration
	onIdle    func(idle.TimeSpan)
	tracker   *idle.Tracker

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// New takes ownership of engine. Callers must not use it directly
// afterwards except through Do.
func New(ctx context.Context, engine *grid.Engine, opts ...Option) *Session {
	o := newOptions(opts)
	id := uuid.New()
	s := &Session{
		id:        id,
		engine:    engine,
		queue:     dispatch.NewSingleQueue(ctx, o.bufferSize),
		logger:    o.logger.With(zap.Stringer("session", id)),
		idleAfter: o.idleAfter,
		onIdle:    o.onIdle,
	}
	if s.idleAfter > 0 {
		s.tracker = idle.New(s.idleAfter)
	}
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Scroll applies a host scroll event. It reports whether the offsets
// changed.
func (s *Session) Scroll(ctx context.Context, ev grid.ScrollEvent) (bool, error) {
	return s.scroll(ctx, "scroll", func(e *grid.Engine) bool { return e.OnScroll(ev) })
}

func (s *Session) ScrollToCell(ctx context.Context, row, column int) (bool, error) {
	return s.scroll(ctx, "scroll to cell", func(e *grid.Engine) bool { return e.ScrollToCell(row, column) })
}

func (s *Session) scroll(ctx context.Context, op string, fn func(*grid.Engine) bool) (bool, error) {
	return call(ctx, s, func(e *grid.Engine) (bool, error) {
		changed := fn(e)
		if changed {
			s.touch()
		}
		s.logger.Debug(op, zap.Bool("changed", changed), zap.Float64("top", e.Scroll().Top), zap.Float64("left", e.Scroll().Left))
		return changed, nil
	})
}

func (s *Session) Render(ctx context.Context) (grid.Frame, error) {
	return call(ctx, s, func(e *grid.Engine) (grid.Frame, error) {
		f := e.RenderPass()
		s.logger.Debug("render", zap.Int("cells", len(f.Cells)))
		return f, nil
	})
}

func (s *Session) Invalidate(ctx context.Context, kind axis.Kind) error {
	return s.Do(ctx, func(e *grid.Engine) error {
		e.Invalidate(kind)
		return nil
	})
}

// Do runs fn on the session worker with exclusive access to the engine.
func (s *Session) Do(ctx context.Context, fn func(*grid.Engine) error) error {
	_, err := call(ctx, s, func(e *grid.Engine) (struct{}, error) {
		return struct{}{}, fn(e)
	})
	return err
}

// Close stops the worker. Pending operations fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.queue.Close()
	s.logger.Debug("closed")
}

func call[R any](ctx context.Context, s *Session, fn func(*grid.Engine) (R, error)) (R, error) {
	v, err := dispatch.Call(ctx, s.queue, s.id.String(), func(context.Context) (R, error) {
		return fn(s.engine)
	})
	if errors.Is(err, dispatch.ErrClosed) {
		err = ErrClosed
	}
	return v, err
}

// touch runs on the worker.
func (s *Session) touch() {
	if s.tracker == nil {
		return
	}
	s.tracker.Touch(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.idleAfter, s.expire)
		return
	}
	s.timer.Reset(s.idleAfter)
}

// expire runs on the timer goroutine and hands the settle check to the
// worker, which owns the tracker.
func (s *Session) expire() {
	err := s.queue.Submit(context.Background(), s.id.String(), func(context.Context) {
		span, ok := s.tracker.Settle(time.Now())
		if !ok {
			return
		}
		s.engine.EndInteraction()
		s.logger.Debug("idle", zap.Duration("interaction", span.Duration()))
		if s.onIdle != nil {
			s.onIdle(span)
		}
	})
	if err != nil && !errors.Is(err, dispatch.ErrClosed) {
		s.logger.Warn("failed to schedule idle check", zap.Error(err))
	}
}

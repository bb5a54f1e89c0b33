package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/idle"
	"github.com/on-the-ground/gridview/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func gridConfig() grid.Config {
	return grid.Config{
		RowCount:       10000,
		ColumnCount:    1000,
		RowSize:        func(int) float64 { return 50 },
		ColumnSize:     func(int) float64 { return 100 },
		ViewportHeight: 400,
		ViewportWidth:  600,
	}
}

func newEngine(t *testing.T) *grid.Engine {
	t.Helper()
	e, err := grid.New(gridConfig(), grid.WithOverscan(0, 0))
	require.NoError(t, err)
	return e
}

func scrollEvent(top, left float64) grid.ScrollEvent {
	return grid.ScrollEvent{
		Top: top, Left: left,
		ViewportHeight: 400, ViewportWidth: 600,
		ScrollableHeight: 500000, ScrollableWidth: 100000,
	}
}

func TestSession_ScrollAndRender(t *testing.T) {
	ctx := context.Background()
	s := session.New(ctx, newEngine(t))
	defer s.Close()

	changed, err := s.Scroll(ctx, scrollEvent(1000, 250))
	require.NoError(t, err)
	assert.True(t, changed)

	f, err := s.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, axis.Range{Start: 20, Stop: 27}, f.Rows)
	assert.Equal(t, grid.Interacting, f.Scroll.Phase())

	changed, err = s.ScrollToCell(ctx, 100, 0)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, s.Invalidate(ctx, axis.Rows))
	require.NoError(t, s.Do(ctx, func(e *grid.Engine) error {
		assert.True(t, e.EndInteraction())
		return nil
	}))
	f, err = s.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, f.Rows.Start)
	assert.Equal(t, grid.Idle, f.Scroll.Phase())
}

func TestSession_DoPropagatesError(t *testing.T) {
	ctx := context.Background()
	s := session.New(ctx, newEngine(t))
	defer s.Close()

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Do(ctx, func(*grid.Engine) error { return boom }), boom)
}

func TestSession_ConcurrentScrolls(t *testing.T) {
	ctx := context.Background()
	s := session.New(ctx, newEngine(t))
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Scroll(ctx, scrollEvent(float64(i*50), 0))
			assert.NoError(t, err)
			_, err = s.Render(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	f, err := s.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.Rows.Start, int(f.Scroll.Top/50))
}

func TestSession_ClosedSessionRejectsWork(t *testing.T) {
	ctx := context.Background()
	s := session.New(ctx, newEngine(t))
	s.Close()

	_, err := s.Render(ctx)
	assert.ErrorIs(t, err, session.ErrClosed)
	_, err = s.Scroll(ctx, scrollEvent(10, 0))
	assert.ErrorIs(t, err, session.ErrClosed)
}

func TestSession_IdleAfterEndsInteraction(t *testing.T) {
	ctx := context.Background()
	settled := make(chan idle.TimeSpan, 1)
	s := session.New(ctx, newEngine(t), session.WithIdleAfter(20*time.Millisecond, func(span idle.TimeSpan) {
		settled <- span
	}))
	defer s.Close()

	_, err := s.Scroll(ctx, scrollEvent(100, 0))
	require.NoError(t, err)
	_, err = s.Scroll(ctx, scrollEvent(200, 0))
	require.NoError(t, err)

	select {
	case span := <-settled:
		assert.GreaterOrEqual(t, span.Duration(), time.Duration(0))
	case <-time.After(2 * time.Second):
		t.Fatal("session never went idle")
	}

	f, err := s.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, grid.Idle, f.Scroll.Phase())
	assert.True(t, f.Layout.PointerEvents)
}

func TestSession_LogsWithSessionID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := context.Background()
	s := session.New(ctx, newEngine(t), session.WithLogger(zap.New(core)))

	_, err := s.Scroll(ctx, scrollEvent(100, 0))
	require.NoError(t, err)
	s.Close()

	entries := logs.FilterMessage("scroll").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, s.ID().String(), entries[0].ContextMap()["session"])
	assert.Equal(t, true, entries[0].ContextMap()["changed"])
	assert.Equal(t, 1, logs.FilterMessage("closed").Len())
}

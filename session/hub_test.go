package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/on-the-ground/gridview/axis"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Lifecycle(t *testing.T) {
	ctx := context.Background()
	h := session.NewHub(ctx, session.WithWorkers(4))
	defer h.Close()

	require.NoError(t, h.Open(ctx, "orders", gridConfig(), grid.WithOverscan(0, 0)))
	assert.Equal(t, 1, h.Len())

	err := h.Open(ctx, "orders", gridConfig())
	assert.ErrorIs(t, err, session.ErrDuplicateGrid)

	changed, err := h.Scroll(ctx, "orders", scrollEvent(1000, 0))
	require.NoError(t, err)
	assert.True(t, changed)

	f, err := h.Render(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, axis.Range{Start: 20, Stop: 27}, f.Rows)

	require.NoError(t, h.Invalidate(ctx, "orders", axis.Columns))
	require.NoError(t, h.Drop(ctx, "orders"))
	assert.Equal(t, 0, h.Len())

	_, err = h.Render(ctx, "orders")
	assert.ErrorIs(t, err, session.ErrUnknownGrid)
	assert.ErrorIs(t, h.Drop(ctx, "orders"), session.ErrUnknownGrid)
}

func TestHub_OpenReportsConfigErrors(t *testing.T) {
	ctx := context.Background()
	h := session.NewHub(ctx)
	defer h.Close()

	err := h.Open(ctx, "bad", grid.Config{RowCount: -1})
	assert.True(t, errors.Is(err, grid.ErrInvalidConfig))
	assert.Equal(t, 0, h.Len())
}

func TestHub_ManyGridsConcurrently(t *testing.T) {
	ctx := context.Background()
	h := session.NewHub(ctx, session.WithWorkers(4), session.WithBufferSize(8))
	defer h.Close()

	const grids = 20
	var wg sync.WaitGroup
	for i := 0; i < grids; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("grid-%d", i)
			if !assert.NoError(t, h.Open(ctx, name, gridConfig(), grid.WithOverscan(0, 0))) {
				return
			}
			for step := 1; step <= 10; step++ {
				_, err := h.Scroll(ctx, name, scrollEvent(float64(step*i*50), 0))
				assert.NoError(t, err)
			}
			f, err := h.Render(ctx, name)
			assert.NoError(t, err)
			assert.Equal(t, 10*i, f.Rows.Start)
		}()
	}
	wg.Wait()
	assert.Equal(t, grids, h.Len())
}

func TestHub_Closed(t *testing.T) {
	ctx := context.Background()
	h := session.NewHub(ctx)
	h.Close()

	assert.ErrorIs(t, h.Open(ctx, "x", gridConfig()), session.ErrClosed)
}

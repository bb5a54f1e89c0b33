package tcellgrid_test

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/render/tcellgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

func readScreenLine(screen tcell.Screen, y, width int) string {
	runes := make([]rune, width)
	for x := range runes {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		runes[x] = ch
	}
	return strings.TrimRight(string(runes), " ")
}

func frame(t *testing.T) grid.Frame {
	t.Helper()
	e, err := grid.New(grid.Config{
		RowCount:       100,
		ColumnCount:    100,
		RowSize:        func(int) float64 { return 50 },
		ColumnSize:     func(int) float64 { return 100 },
		ViewportHeight: 400,
		ViewportWidth:  600,
	}, grid.WithOverscan(0, 0))
	require.NoError(t, err)
	return e.RenderPass()
}

func TestDraw(t *testing.T) {
	screen := newScreen(t, 60, 9)
	tcellgrid.Draw(screen, tcellgrid.DefaultTheme, frame(t), 10, 50)

	assert.Equal(t, "h:0      │h:1      │h:2      │h:3      │h:4      │h:5      │", readScreenLine(screen, 0, 60))
	assert.Equal(t, "0:0      │0:1      │0:2      │0:3      │0:4      │0:5      │", readScreenLine(screen, 1, 60))
	assert.Equal(t, "7:0      │7:1      │7:2      │7:3      │7:4      │7:5      │", readScreenLine(screen, 8, 60))

	_, _, header, _ := screen.GetContent(3, 0)
	assert.Equal(t, tcellgrid.DefaultTheme.Header, header)
	_, _, even, _ := screen.GetContent(3, 1)
	assert.Equal(t, tcellgrid.DefaultTheme.Even, even)
	_, _, odd, _ := screen.GetContent(3, 2)
	assert.Equal(t, tcellgrid.DefaultTheme.Odd, odd)
}

func TestDraw_ClipsToSmallScreen(t *testing.T) {
	screen := newScreen(t, 25, 3)
	tcellgrid.Draw(screen, tcellgrid.DefaultTheme, frame(t), 10, 50)

	assert.Equal(t, "h:0      │h:1      │h:2", readScreenLine(screen, 0, 25))
	assert.Equal(t, "1:0      │1:1      │1:2", readScreenLine(screen, 2, 25))
}

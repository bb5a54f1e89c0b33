package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/gridview/config"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/idle"
	"github.com/on-the-ground/gridview/render/tcellgrid"
	"github.com/on-the-ground/gridview/session"
	"go.uber.org/zap"
)

// Scroll steps in engine units.
const (
	lineStep  = unitsPerRow
	charStep  = 4 * unitsPerColumn
	wheelStep = 3 * unitsPerRow
)

func interactive(ctx context.Context, cfg *config.Binding, heights, widths []float64, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	cols, lines := screen.Size()
	e, err := newEngine(cfg, heights, widths, cols, lines, logger)
	if err != nil {
		return err
	}

	settings, err := cfg.SessionOptions()
	if err != nil {
		return err
	}
	s := session.New(ctx, e,
		session.WithBufferSize(settings.BufferSize),
		session.WithLogger(logger),
		session.WithIdleAfter(settings.IdleAfter, func(span idle.TimeSpan) {
			// redraw without the interacting markers
			if err := screen.PostEvent(tcell.NewEventInterrupt(span)); err != nil {
				logger.Debug("dropped idle redraw", zap.Error(err))
			}
		}),
	)
	defer s.Close()

	v := &viewer{screen: screen, session: s, logger: logger}
	if err := v.redraw(ctx); err != nil {
		return err
	}
	for {
		quit, err := v.handle(ctx, screen.PollEvent())
		if err != nil || quit {
			return err
		}
	}
}

type viewer struct {
	screen  tcell.Screen
	session *session.Session
	logger  *zap.Logger
	frame   grid.Frame
}

func (v *viewer) redraw(ctx context.Context) error {
	f, err := v.session.Render(ctx)
	if err != nil {
		return err
	}
	v.frame = f
	tcellgrid.Draw(v.screen, tcellgrid.DefaultTheme, f, unitsPerColumn, unitsPerRow)
	return nil
}

// scrollBy requests a relative scroll clamped against the last frame's
// estimated extents.
func (v *viewer) scrollBy(ctx context.Context, dTop, dLeft float64) error {
	cols, lines := v.screen.Size()
	changed, err := v.session.Scroll(ctx, grid.ScrollEvent{
		Top:              v.frame.Scroll.Top + dTop,
		Left:             v.frame.Scroll.Left + dLeft,
		ViewportHeight:   float64(max(lines-1, 0)) * unitsPerRow,
		ViewportWidth:    float64(cols) * unitsPerColumn,
		ScrollableHeight: v.frame.EstimatedTotalHeight,
		ScrollableWidth:  v.frame.EstimatedTotalWidth,
	})
	if err != nil || !changed {
		return err
	}
	return v.redraw(ctx)
}

func (v *viewer) handle(ctx context.Context, ev tcell.Event) (quit bool, err error) {
	_, lines := v.screen.Size()
	page := float64(max(lines-2, 1)) * unitsPerRow

	switch ev := ev.(type) {
	case nil:
		return true, nil
	case *tcell.EventResize:
		cols, lines := ev.Size()
		err = v.session.Do(ctx, func(e *grid.Engine) error {
			return e.SetViewport(float64(max(lines-1, 0))*unitsPerRow, float64(cols)*unitsPerColumn)
		})
		if err == nil {
			v.screen.Sync()
			err = v.redraw(ctx)
		}
	case *tcell.EventInterrupt:
		err = v.redraw(ctx)
	case *tcell.EventMouse:
		switch ev.Buttons() {
		case tcell.WheelUp:
			err = v.scrollBy(ctx, -wheelStep, 0)
		case tcell.WheelDown:
			err = v.scrollBy(ctx, wheelStep, 0)
		case tcell.WheelLeft:
			err = v.scrollBy(ctx, 0, -charStep)
		case tcell.WheelRight:
			err = v.scrollBy(ctx, 0, charStep)
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true, nil
			}
		case tcell.KeyUp:
			err = v.scrollBy(ctx, -lineStep, 0)
		case tcell.KeyDown:
			err = v.scrollBy(ctx, lineStep, 0)
		case tcell.KeyLeft:
			err = v.scrollBy(ctx, 0, -charStep)
		case tcell.KeyRight:
			err = v.scrollBy(ctx, 0, charStep)
		case tcell.KeyPgUp:
			err = v.scrollBy(ctx, -page, 0)
		case tcell.KeyPgDn:
			err = v.scrollBy(ctx, page, 0)
		case tcell.KeyHome:
			err = v.scrollBy(ctx, -v.frame.Scroll.Top, -v.frame.Scroll.Left)
		case tcell.KeyEnd:
			err = v.scrollBy(ctx, v.frame.EstimatedTotalHeight, 0)
		}
	}
	if err != nil {
		v.logger.Error("event failed", zap.Error(err))
	}
	return false, err
}

// Package app runs the interactive terminal demo: tcell events in, braille frames out.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/kinematics/audio"
	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/config"
	"github.com/lixenwraith/kinematics/driver"
	"github.com/lixenwraith/kinematics/input"
	"github.com/lixenwraith/kinematics/parameter"
	"github.com/lixenwraith/kinematics/render"
	"github.com/lixenwraith/kinematics/tracker"
	"github.com/lixenwraith/kinematics/vmath"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const eventQueueSize = 256

// NewDriver builds the chain, tracker and parameter store described by cfg
func NewDriver(cfg *config.Config, logger *zap.Logger) (*driver.Driver, error) {
	color, err := cfg.Render.ParsedColor()
	if err != nil {
		return nil, err
	}
	c := chain.New(color)
	t := tracker.New(vmath.Point{}, cfg.Tracker.Drift())
	store := parameter.NewStore(cfg.Chain)
	return driver.New(c, t, store, logger), nil
}

// App owns the screen loop
// All simulation state is touched only from the goroutine running Run
type App struct {
	screen  tcell.Screen
	term    *render.Terminal
	driver  *driver.Driver
	keys    *input.KeyTable
	pointer *input.Pointer
	cues    *audio.Cues
	logger  *zap.Logger

	interval time.Duration
}

// New prepares an app for an initialized screen, cues may be nil
func New(screen tcell.Screen, cfg *config.Config, cues *audio.Cues, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	d, err := NewDriver(cfg, logger)
	if err != nil {
		return nil, err
	}

	keys := input.DefaultKeyTable()
	if err := keys.ApplyOverrides(cfg.Keys); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}

	return &App{
		screen:   screen,
		term:     render.NewTerminal(screen, cfg.Render.Scale, cfg.Render.StatusBar),
		driver:   d,
		keys:     keys,
		pointer:  input.NewPointer(cfg.Input.IdleTimeout),
		cues:     cues,
		logger:   logger.Named("app"),
		interval: cfg.Render.FrameInterval(),
	}, nil
}

// Driver exposes the frame driver
func (a *App) Driver() *driver.Driver {
	return a.driver
}

// Run processes events and frames until quit is requested or ctx is done
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	defer a.screen.DisableMouse()
	defer a.screen.DisableFocus()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, eventQueueSize)
	ticks := make(chan time.Time, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Closes events on return
		a.screen.ChannelEvents(events, gctx.Done())
		return nil
	})
	g.Go(func() error {
		return pace(gctx, a.interval, ticks)
	})

	a.logger.Info("loop started", zap.Duration("frame_interval", a.interval))
	err := a.loop(gctx, events, ticks)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}

	a.logger.Info("loop stopped", zap.Uint64("frames", a.driver.Frames()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pace emits ticks at the frame rate, dropping ticks the loop has not consumed yet
func pace(ctx context.Context, interval time.Duration, ticks chan<- time.Time) error {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		select {
		case ticks <- time.Now():
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				return nil
			}

		case now := <-ticks:
			if err := a.frame(now); err != nil {
				return err
			}
		}
	}
}

// handleEvent applies one terminal event, returns false to quit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		intent := a.keys.Lookup(ev)
		switch {
		case intent == input.IntentQuit:
			return false
		case intent == input.IntentToggleStatus:
			a.term.SetStatusBar(!a.term.StatusBar())
		case intent == input.IntentToggleMute:
			if a.cues != nil {
				a.logger.Debug("audio mute toggled", zap.Bool("muted", a.cues.ToggleMute()))
			}
		case intent.IsParameter():
			if changes := input.Apply(a.driver.Params(), intent); changes != parameter.ChangedNone {
				a.logger.Debug("parameters edited",
					zap.Stringer("intent", intent),
					zap.Stringer("changed", changes))
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		a.pointer.Move(a.term.CellToWorld(col, row), ev.When())

	case *tcell.EventFocus:
		a.pointer.Focus(ev.Focused)

	case *tcell.EventResize:
		a.screen.Sync()
		a.term.Resize()
		w, h := a.screen.Size()
		a.logger.Debug("resized", zap.Int("cols", w), zap.Int("rows", h))
	}
	return true
}

// frame steps the driver once and draws the result
func (a *App) frame(now time.Time) error {
	pos, present := a.pointer.Position(now)
	f := a.driver.Step(driver.Input{Pointer: pos, Present: present})

	if err := a.term.Render(f); err != nil {
		return fmt.Errorf("render frame %d: %w", f.Index, err)
	}
	if f.Transition && a.cues != nil {
		a.cues.Play(f.State)
	}
	return nil
}

package ui

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/infrastructure/render"
	"github.com/bnema/tapmap/internal/infrastructure/terminal"
	"github.com/bnema/tapmap/internal/logging"
	"github.com/bnema/tapmap/internal/ui/input"
	"github.com/bnema/tapmap/internal/ui/mainloop"
	"github.com/bnema/tapmap/internal/ui/overlay"
)

const (
	repaintPlayKey = "overlay-repaint-play"
	repaintEditKey = "overlay-repaint-edit"
)

// App wires the overlay components around one main loop.
type App struct {
	deps *Dependencies

	loop      *mainloop.Loop
	coalescer *mainloop.Coalescer

	playView *overlay.View
	editView *overlay.View
	editor   *overlay.EditController
	geometry *overlay.GeometrySync
	router   *input.Router

	playSurface *render.PreviewSurface
	editSurface *render.PreviewSurface
}

// New builds the app. Nothing runs until Run.
func New(ctx context.Context, deps *Dependencies) (*App, error) {
	if deps == nil || deps.Config == nil || deps.Store == nil || deps.Translator == nil || deps.Embedder == nil {
		return nil, errors.New("ui: incomplete dependencies")
	}
	cfg := deps.Config

	a := &App{deps: deps, loop: mainloop.NewLoop(0, 0)}
	a.coalescer = mainloop.NewCoalescer(func(fn func()) { a.loop.Post(fn) })

	a.playSurface = render.NewPreviewSurface(ctx, deps.PreviewPath, a.scheduler(repaintPlayKey))
	a.editSurface = render.NewPreviewSurface(ctx, deps.PreviewPath, a.scheduler(repaintEditKey))

	viewOpts := overlay.Options{
		DeleteRadius: cfg.Overlay.DeleteRadiusPx,
		GridSize:     cfg.Overlay.GridSizePx,
	}
	a.playView = overlay.NewView(deps.Store, a.playSurface, overlay.ModePassThrough, viewOpts)
	a.editView = overlay.NewView(deps.Store, a.editSurface, overlay.ModeCapture, viewOpts)
	a.editor = overlay.NewEditController(a.editView, overlay.EditOptions{
		ClickThreshold:  cfg.Overlay.ClickThresholdPx,
		DefaultDiameter: cfg.Overlay.DefaultDiameterPx,
		MinSide:         cfg.Overlay.MinSidePx,
	})

	a.playSurface.SetPainter(func(c port.Canvas) { a.playView.Render(c, overlay.Session{}) })
	a.editSurface.SetPainter(func(c port.Canvas) { a.editView.Render(c, a.editor.Session()) })

	a.geometry = overlay.NewGeometrySync(deps.Embedder, cfg.Device.Ratio(), a.playView, a.editView, a.coalescer)

	a.router = input.NewRouter(a.editor, deps.Translator, a.pointerLocal)
	a.router.SetOnModeChange(func(_, to input.Mode) {
		a.geometry.SetEditMode(ctx, to == input.ModeEdit)
	})

	return a, nil
}

// Router exposes the input router.
func (a *App) Router() *input.Router { return a.router }

// Geometry exposes the geometry synchronizer.
func (a *App) Geometry() *overlay.GeometrySync { return a.geometry }

// Editor exposes the edit controller.
func (a *App) Editor() *overlay.EditController { return a.editor }

// Post runs fn on the main loop.
func (a *App) Post(fn func()) bool { return a.loop.Post(fn) }

// Run drives the overlay until ctx is done, the user quits or a worker fails.
func (a *App) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "overlay-app")
	log := logging.FromContext(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.loop.Run(gctx) })

	if a.deps.Keyboard != nil {
		status := make(chan bool, 8)
		a.loop.Watch(status, func(visible bool) {
			a.deps.Translator.SetSoftKeyboardVisible(gctx, visible)
		})
		g.Go(func() error {
			if err := a.deps.Keyboard(gctx, status); err != nil {
				// the overlay keeps working without keyboard status
				log.Warn().Err(err).Msg("soft keyboard monitor stopped")
			}
			return nil
		})
	}

	events := make(chan terminal.Event, 64)
	if a.deps.Input != nil {
		// not part of the group: a blocking terminal read cannot be interrupted
		go func() {
			if err := terminal.ReadEvents(gctx, a.deps.Input, events); err != nil {
				log.Warn().Err(err).Msg("terminal input stopped")
			}
			cancel()
		}()
	}

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				a.loop.Post(func() {
					if a.router.Handle(gctx, ev) == input.ActionQuit {
						log.Info().Msg("quit requested")
						cancel()
					}
				})
			}
		}
	})

	a.loop.Post(func() {
		a.geometry.Attach(gctx)
		a.geometry.Request(gctx)
	})

	err := g.Wait()
	a.shutdown(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("overlay stopped: %w", err)
	}
	return nil
}

// shutdown finishes an open edit session and flushes the store. It runs
// after the loop stopped, so it owns the state.
func (a *App) shutdown(ctx context.Context) {
	log := logging.FromContext(ctx)
	a.coalescer.Destroy()

	if a.router.Mode() == input.ModeEdit {
		a.editor.Exit(context.WithoutCancel(ctx))
	}
	if a.deps.Store.Dirty() {
		if err := a.deps.Store.Commit(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("keymaps not saved on exit")
		}
	}
	if a.deps.Dispatcher != nil {
		if err := a.deps.Dispatcher.Close(); err != nil {
			log.Debug().Err(err).Msg("closing control channel")
		}
	}
}

// pointerLocal maps a terminal cell to a point relative to the display rect,
// which is what the edit controller works in.
func (a *App) pointerLocal(col, row int) entity.Vec {
	p := a.deps.Embedder.ToLocal(col, row)
	if rect, ok := a.editView.Rect(); ok {
		return p.Sub(rect.Origin())
	}
	return p
}

func (a *App) scheduler(key string) func(func()) {
	return func(fn func()) { a.coalescer.Post(key, fn) }
}

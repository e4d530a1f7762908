package overlay

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/logging"
	"github.com/bnema/tapmap/internal/ui/mainloop"
)

const geometryTaskKey = "overlay-geometry"

// GeometrySync keeps the play and edit views aligned with the letterboxed
// display area of the embedded window. Both views are repositioned from the
// same rect on every recompute; exactly one is visible at a time.
type GeometrySync struct {
	embedder  port.WindowEmbedder
	ratio     float64
	play      *View
	edit      *View
	coalescer *mainloop.Coalescer

	editMode   bool
	pageActive bool
}

// NewGeometrySync wires the two views to embedder. Recomputes requested through
// Request are coalesced on the main loop.
func NewGeometrySync(
	embedder port.WindowEmbedder,
	ratio float64,
	play, edit *View,
	coalescer *mainloop.Coalescer,
) *GeometrySync {
	return &GeometrySync{
		embedder:   embedder,
		ratio:      ratio,
		play:       play,
		edit:       edit,
		coalescer:  coalescer,
		pageActive: true,
	}
}

// Attach subscribes to the embedder's resize and move notifications.
func (g *GeometrySync) Attach(ctx context.Context) {
	g.embedder.OnResize(func() { g.Request(ctx) })
	g.embedder.OnMove(func() { g.Request(ctx) })
}

// Request schedules a recompute. Bursts collapse into one Sync.
func (g *GeometrySync) Request(ctx context.Context) {
	g.coalescer.Post(geometryTaskKey, func() {
		_ = g.Sync(ctx)
	})
}

// Sync recomputes the display rect and applies it to both views. When no
// rect can be computed both views are hidden and the error is returned.
func (g *GeometrySync) Sync(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if !g.pageActive {
		g.hideAll()
		return nil
	}

	container, ready := g.embedder.ContainerRect(ctx)
	if !ready {
		log.Debug().Msg("embedded window not ready, hiding overlay")
		g.hideAll()
		return entity.ErrGeometryUnavailable
	}

	rect, err := entity.ResolveDisplayRect(container, g.ratio)
	if err != nil {
		if errors.Is(err, entity.ErrGeometryUnavailable) {
			log.Debug().
				Int("width", container.Width).
				Int("height", container.Height).
				Msg("container has no area, hiding overlay")
		} else {
			log.Warn().Err(err).Float64("ratio", g.ratio).Msg("cannot resolve display rect")
		}
		g.hideAll()
		return fmt.Errorf("resolve display rect: %w", err)
	}

	changed := g.play.SetGeometry(rect)
	if g.edit.SetGeometry(rect) {
		changed = true
	}
	if changed {
		log.Debug().
			Float64("x", rect.X).
			Float64("y", rect.Y).
			Float64("width", rect.Width).
			Float64("height", rect.Height).
			Msg("overlay geometry updated")
	}

	g.applyVisibility()
	return nil
}

// SetEditMode switches which view is visible and resyncs.
func (g *GeometrySync) SetEditMode(ctx context.Context, on bool) {
	if g.editMode == on {
		return
	}
	g.editMode = on
	logging.FromContext(ctx).Info().Bool("edit", on).Msg("overlay mode changed")
	_ = g.Sync(ctx)
}

// EditMode reports whether the capturing view is the visible one.
func (g *GeometrySync) EditMode() bool { return g.editMode }

// SetPageActive is called when the page hosting the mirror is switched to or
// away from. The overlay is hidden while its page is not shown.
func (g *GeometrySync) SetPageActive(ctx context.Context, active bool) {
	g.pageActive = active
	_ = g.Sync(ctx)
}

// Active returns the view currently meant to be visible.
func (g *GeometrySync) Active() *View {
	if g.editMode {
		return g.edit
	}
	return g.play
}

func (g *GeometrySync) applyVisibility() {
	if g.editMode {
		g.play.Hide()
		g.edit.Show()
		return
	}
	g.edit.Hide()
	g.play.Show()
}

func (g *GeometrySync) hideAll() {
	g.play.Hide()
	g.edit.Hide()
	g.play.ClearGeometry()
	g.edit.ClearGeometry()
}

package overlay

import (
	"context"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/logging"
)

// Phase is the state of an edit session.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseCreatingByDrag sizes a placeholder keymap from the pointer-down origin.
	PhaseCreatingByDrag
	// PhaseDismissing follows a pointer-down on empty space while a keymap was
	// selected. It becomes PhaseCreatingByDrag once the pointer travels past
	// the click threshold; a release before that only clears the selection.
	PhaseDismissing
	PhaseSelected
	PhaseMovingSelected
	PhaseAssigningCombo
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCreatingByDrag:
		return "creating"
	case PhaseDismissing:
		return "dismissing"
	case PhaseSelected:
		return "selected"
	case PhaseMovingSelected:
		return "moving"
	case PhaseAssigningCombo:
		return "assigning"
	default:
		return "unknown"
	}
}

// Session is the render-facing snapshot of an edit session.
type Session struct {
	Phase           Phase
	Selected        *entity.Keymap
	Active          *entity.Keymap
	PendingModifier entity.KeyCode
}

// EditOptions are the pixel thresholds of the edit interactions.
type EditOptions struct {
	ClickThreshold  float64
	DefaultDiameter float64
	MinSide         float64
}

// DefaultEditOptions returns the stock thresholds.
func DefaultEditOptions() EditOptions {
	return EditOptions{
		ClickThreshold:  5,
		DefaultDiameter: 100,
		MinSide:         10,
	}
}

type editSession struct {
	phase Phase
	// origin is the pointer-down point in surface-local pixels.
	origin entity.Vec
	// target is the placeholder being created or the keymap being moved/selected.
	target *entity.Keymap
	// moveFrom is the target's pixel top-left when the move started.
	moveFrom entity.Vec
	// restore is the target's normalized position before the move, used on cancel.
	restore entity.Vec
	pending entity.KeyCode
}

// EditController runs the edit-mode state machine against a capturing view
// and the shared keymap store. All methods must be called from the UI loop.
type EditController struct {
	view  *View
	store *usecase.KeymapStore
	opts  EditOptions

	s editSession
}

// NewEditController creates a controller for view.
func NewEditController(view *View, opts EditOptions) *EditController {
	def := DefaultEditOptions()
	if opts.ClickThreshold <= 0 {
		opts.ClickThreshold = def.ClickThreshold
	}
	if opts.DefaultDiameter <= 0 {
		opts.DefaultDiameter = def.DefaultDiameter
	}
	if opts.MinSide <= 0 {
		opts.MinSide = def.MinSide
	}
	return &EditController{
		view:  view,
		store: view.Store(),
		opts:  opts,
	}
}

// Phase returns the current phase.
func (c *EditController) Phase() Phase { return c.s.phase }

// Selected returns the selected keymap, if any.
func (c *EditController) Selected() *entity.Keymap {
	switch c.s.phase {
	case PhaseSelected, PhaseAssigningCombo:
		return c.s.target
	default:
		return nil
	}
}

// Session returns the snapshot handed to View.Render.
func (c *EditController) Session() Session {
	out := Session{Phase: c.s.phase}
	switch c.s.phase {
	case PhaseSelected, PhaseAssigningCombo:
		out.Selected = c.s.target
		out.PendingModifier = c.s.pending
	case PhaseCreatingByDrag, PhaseMovingSelected:
		out.Active = c.s.target
	}
	return out
}

// PointerDown handles a primary-button press at surface-local point p.
func (c *EditController) PointerDown(ctx context.Context, p entity.Vec) {
	rect, ok := c.view.Rect()
	if !ok || rect.IsZero() {
		return
	}
	log := logging.FromContext(ctx)

	switch c.s.phase {
	case PhaseCreatingByDrag, PhaseMovingSelected, PhaseDismissing:
		// a press without a matching release; the previous gesture is finished as is
		c.PointerUp(ctx, p)
	}

	hit := c.view.HitTest(p, c.Selected())
	switch hit.Kind {
	case HitDelete:
		c.store.Remove(hit.Keymap)
		log.Info().Int("index", hit.Index).Msg("keymap deleted")
		c.reset()
		c.commit(ctx)

	case HitKeymap:
		km := hit.Keymap
		b := km.Bounds(rect)
		c.s = editSession{
			phase:    PhaseMovingSelected,
			origin:   p,
			target:   km,
			moveFrom: entity.Vec{X: b.X, Y: b.Y},
			restore:  km.Position,
		}

	default:
		if c.s.phase == PhaseSelected || c.s.phase == PhaseAssigningCombo {
			c.s = editSession{phase: PhaseDismissing, origin: p}
			break
		}
		c.beginCreate(p, rect)
	}
	c.view.Invalidate()
}

// PointerMove handles pointer motion with the primary button held.
func (c *EditController) PointerMove(ctx context.Context, p entity.Vec) {
	rect, ok := c.view.Rect()
	if !ok || rect.IsZero() {
		return
	}

	switch c.s.phase {
	case PhaseDismissing:
		if p.Sub(c.s.origin).Len() < c.opts.ClickThreshold {
			return
		}
		c.beginCreate(c.s.origin, rect)
		c.resizePlaceholder(p, rect)

	case PhaseCreatingByDrag:
		c.resizePlaceholder(p, rect)

	case PhaseMovingSelected:
		to := c.s.moveFrom.Add(p.Sub(c.s.origin))
		c.s.target.MoveTo(rect.ToNormalized(to))
		c.store.Touch()

	default:
		return
	}
	c.view.Invalidate()
}

// PointerUp handles the primary-button release.
func (c *EditController) PointerUp(ctx context.Context, p entity.Vec) {
	rect, ok := c.view.Rect()
	if !ok || rect.IsZero() {
		return
	}
	log := logging.FromContext(ctx)
	moved := p.Sub(c.s.origin).Len()

	switch c.s.phase {
	case PhaseDismissing:
		c.reset()

	case PhaseCreatingByDrag:
		km := c.s.target
		if moved < c.opts.ClickThreshold {
			c.store.Remove(km)
			d := c.opts.DefaultDiameter
			km = entity.NewKeymap(
				rect.ToNormalized(entity.Vec{X: p.X - d/2, Y: p.Y - d/2}),
				rect.ToNormalized(entity.Vec{X: d, Y: d}),
			)
			c.store.Append(km)
		}
		log.Info().
			Float64("x", km.Position.X).
			Float64("y", km.Position.Y).
			Float64("w", km.Size.X).
			Float64("h", km.Size.Y).
			Msg("keymap created")
		c.s = editSession{phase: PhaseAssigningCombo, target: km}
		c.commit(ctx)

	case PhaseMovingSelected:
		km := c.s.target
		if moved < c.opts.ClickThreshold {
			// a click, not a move: put it back exactly and open combo assignment
			if km.Position != c.s.restore {
				km.Position = c.s.restore
				c.store.Touch()
			}
			c.s = editSession{phase: PhaseAssigningCombo, target: km}
			break
		}
		c.s = editSession{phase: PhaseSelected, target: km}
		log.Debug().Float64("x", km.Position.X).Float64("y", km.Position.Y).Msg("keymap moved")
		c.commit(ctx)

	default:
		return
	}
	c.view.Invalidate()
}

// KeyPress handles a key press in edit mode and reports whether it was consumed.
func (c *EditController) KeyPress(ctx context.Context, key entity.KeyCode) bool {
	log := logging.FromContext(ctx)
	phase := c.s.phase

	if phase != PhaseSelected && phase != PhaseAssigningCombo {
		return false
	}
	km := c.s.target

	switch {
	case key == entity.KeyDelete:
		c.store.Remove(km)
		log.Info().Msg("keymap deleted")
		c.reset()
		c.commit(ctx)

	case key == entity.KeyEscape:
		c.reset()

	case phase != PhaseAssigningCombo:
		return false

	case key.IsModifier():
		c.s.pending = key

	default:
		combo := entity.KeyCombo{key}
		if c.s.pending != 0 {
			combo = entity.KeyCombo{c.s.pending, key}
		}
		km.SetCombo(combo)
		c.store.Touch()
		log.Info().Str("combo", combo.String()).Msg("keymap combo assigned")
		c.reset()
		c.commit(ctx)
	}

	c.view.Invalidate()
	return true
}

// Exit leaves edit mode. An in-flight creation is discarded, an in-flight move
// is reverted, the selection is cleared and the store snapshot is persisted.
func (c *EditController) Exit(ctx context.Context) {
	switch c.s.phase {
	case PhaseCreatingByDrag:
		c.store.Remove(c.s.target)
	case PhaseMovingSelected:
		if c.s.target.Position != c.s.restore {
			c.s.target.Position = c.s.restore
			c.store.Touch()
		}
	}
	c.reset()
	c.commit(ctx)
	c.view.Invalidate()
}

func (c *EditController) beginCreate(origin entity.Vec, rect entity.DisplayRect) {
	side := c.opts.MinSide
	placeholder := entity.NewKeymap(
		rect.ToNormalized(origin),
		rect.ToNormalized(entity.Vec{X: side, Y: side}),
	)
	c.store.Append(placeholder)
	c.s = editSession{phase: PhaseCreatingByDrag, origin: origin, target: placeholder}
}

// resizePlaceholder makes the placeholder a square spanning from the origin
// toward p in whichever quadrant p lies.
func (c *EditController) resizePlaceholder(p entity.Vec, rect entity.DisplayRect) {
	d := p.Sub(c.s.origin)
	side := min(abs(d.X), abs(d.Y))
	side = max(side, c.opts.MinSide)

	topLeft := c.s.origin
	if d.X < 0 {
		topLeft.X -= side
	}
	if d.Y < 0 {
		topLeft.Y -= side
	}

	km := c.s.target
	km.Position = rect.ToNormalized(topLeft)
	km.Size = rect.ToNormalized(entity.Vec{X: side, Y: side})
	km.Clamp()
	c.store.Touch()
}

func (c *EditController) reset() {
	c.s = editSession{phase: PhaseIdle}
}

func (c *EditController) commit(ctx context.Context) {
	// the store logs and keeps itself dirty on failure; the next commit retries
	_ = c.store.Commit(ctx)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

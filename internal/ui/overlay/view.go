// Package overlay renders keymaps over the mirrored display and turns edit-mode
// pointer and keyboard input into keymap mutations.
package overlay

import (
	"image/color"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/domain/entity"
)

// Mode selects how a view treats pointer input.
type Mode int

const (
	// ModePassThrough lets every click fall through to the embedded window (play mode).
	ModePassThrough Mode = iota
	// ModeCapture grabs pointer and keyboard input exclusively (edit mode).
	ModeCapture
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModePassThrough:
		return "play"
	case ModeCapture:
		return "edit"
	default:
		return "unknown"
	}
}

// Options tunes rendering and hit-testing.
type Options struct {
	// DeleteRadius is the radius in pixels of the delete affordance drawn at
	// the top-right corner of the selected keymap's bounds.
	DeleteRadius float64
	// GridSize is the spacing in pixels of the edit-mode grid. Zero disables it.
	GridSize float64
}

// DefaultOptions returns the stock rendering options.
func DefaultOptions() Options {
	return Options{
		DeleteRadius: 12.5,
		GridSize:     50,
	}
}

var (
	colorEditTint    = color.RGBA{R: 0, G: 0, B: 0, A: 60}
	colorGrid        = color.RGBA{R: 100, G: 100, B: 100, A: 80}
	colorShape       = color.RGBA{R: 255, G: 0, B: 0, A: 120}
	colorLabel       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorSelectLine  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorSelectFill  = color.RGBA{R: 255, G: 255, B: 0, A: 50}
	colorDragLine    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	colorDragFill    = color.RGBA{R: 0, G: 255, B: 255, A: 50}
	colorDeleteFill  = color.RGBA{R: 255, G: 0, B: 0, A: 200}
	colorPendingText = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// HitKind classifies the result of a hit-test.
type HitKind int

const (
	HitNone HitKind = iota
	HitDelete
	HitKeymap
)

// Hit is the result of View.HitTest.
type Hit struct {
	Kind   HitKind
	Index  int
	Keymap *entity.Keymap
}

// View draws the keymaps of a shared store onto an overlay surface. It keeps
// only the last applied display rect; keymaps are always read from the store.
type View struct {
	store   *usecase.KeymapStore
	surface port.OverlaySurface
	mode    Mode
	opts    Options

	rect    entity.DisplayRect
	hasRect bool
}

// NewView creates a view over store drawing on surface. The view repaints
// whenever the store changes.
func NewView(store *usecase.KeymapStore, surface port.OverlaySurface, mode Mode, opts Options) *View {
	if opts.DeleteRadius <= 0 {
		opts.DeleteRadius = DefaultOptions().DeleteRadius
	}
	v := &View{
		store:   store,
		surface: surface,
		mode:    mode,
		opts:    opts,
	}
	store.OnChange(v.Invalidate)
	return v
}

// Mode returns the input mode of the view.
func (v *View) Mode() Mode { return v.mode }

// Store returns the shared keymap store.
func (v *View) Store() *usecase.KeymapStore { return v.store }

// Rect returns the last applied display rect and whether one is set.
func (v *View) Rect() (entity.DisplayRect, bool) {
	return v.rect, v.hasRect
}

// SetGeometry repositions the surface. It applies even while the view is
// hidden so that showing it never exposes stale geometry. Returns false when
// the rect was already current.
func (v *View) SetGeometry(rect entity.DisplayRect) bool {
	if v.hasRect && v.rect == rect {
		return false
	}
	v.rect = rect
	v.hasRect = true
	v.surface.SetGeometry(rect)
	v.surface.Invalidate()
	return true
}

// ClearGeometry forgets the rect. The caller hides the view.
func (v *View) ClearGeometry() {
	v.rect = entity.DisplayRect{}
	v.hasRect = false
}

// Show makes the view visible and raises it above the embedded window.
func (v *View) Show() {
	if !v.surface.IsVisible() {
		v.surface.Show()
	}
	v.surface.Raise()
}

// Hide hides the view.
func (v *View) Hide() {
	if v.surface.IsVisible() {
		v.surface.Hide()
	}
}

// Visible reports whether the surface is shown.
func (v *View) Visible() bool { return v.surface.IsVisible() }

// Invalidate requests a repaint.
func (v *View) Invalidate() { v.surface.Invalidate() }

// DeleteAffordance returns the center of the delete target for km.
func (v *View) DeleteAffordance(km *entity.Keymap) entity.Vec {
	b := km.Bounds(v.rect)
	return entity.Vec{X: b.X + b.W, Y: b.Y}
}

// HitTest classifies a surface-local point. The delete affordance of the
// selected keymap wins, then keymaps in list order, then empty space.
func (v *View) HitTest(p entity.Vec, selected *entity.Keymap) Hit {
	if !v.hasRect || v.mode != ModeCapture {
		return Hit{Kind: HitNone, Index: -1}
	}

	if selected != nil {
		if idx := v.store.IndexOf(selected); idx >= 0 {
			if p.Sub(v.DeleteAffordance(selected)).Len() <= v.opts.DeleteRadius {
				return Hit{Kind: HitDelete, Index: idx, Keymap: selected}
			}
		}
	}

	for i := 0; i < v.store.Len(); i++ {
		km := v.store.At(i)
		if km.Contains(v.rect, p) {
			return Hit{Kind: HitKeymap, Index: i, Keymap: km}
		}
	}

	return Hit{Kind: HitNone, Index: -1}
}

// Render draws the current store onto canvas using surface-local pixels.
func (v *View) Render(canvas port.Canvas, s Session) {
	if !v.hasRect {
		return
	}
	edit := v.mode == ModeCapture

	if edit {
		v.drawBackdrop(canvas)
	}

	for i := 0; i < v.store.Len(); i++ {
		km := v.store.At(i)
		b := km.Bounds(v.rect)

		if edit {
			switch km {
			case s.Selected:
				grown := inset(b, -5)
				canvas.FillRect(grown, colorSelectFill)
				canvas.StrokeRect(grown, colorSelectLine, 1)
			case s.Active:
				grown := inset(b, -3)
				canvas.FillRect(grown, colorDragFill)
				canvas.StrokeRect(grown, colorDragLine, 1)
			}
		}

		switch km.ShapeKind() {
		case entity.ShapeRectangle:
			canvas.FillRect(b, colorShape)
		default:
			canvas.FillEllipse(b, colorShape)
		}

		label := km.DisplayLabel()
		textColor := colorLabel
		if edit && km == s.Selected && s.PendingModifier != 0 {
			label = s.PendingModifier.Short() + "+?"
			textColor = colorPendingText
		}
		canvas.Text(b, label, textColor)
	}

	if edit && s.Selected != nil && v.store.IndexOf(s.Selected) >= 0 {
		c := v.DeleteAffordance(s.Selected)
		r := v.opts.DeleteRadius
		btn := entity.PixelRect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}
		canvas.FillEllipse(btn, colorDeleteFill)
		canvas.Text(btn, "X", colorLabel)
	}
}

func (v *View) drawBackdrop(canvas port.Canvas) {
	w, h := v.rect.Width, v.rect.Height
	canvas.FillRect(entity.PixelRect{W: w, H: h}, colorEditTint)

	g := v.opts.GridSize
	if g <= 0 {
		return
	}
	for x := 0.0; x < w; x += g {
		canvas.Line(entity.Vec{X: x}, entity.Vec{X: x, Y: h}, colorGrid, 1)
	}
	for y := 0.0; y < h; y += g {
		canvas.Line(entity.Vec{Y: y}, entity.Vec{X: w, Y: y}, colorGrid, 1)
	}
}

func inset(r entity.PixelRect, d float64) entity.PixelRect {
	return entity.PixelRect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

package overlay_test

import (
	"testing"

	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/ui/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_HitTestPrecedence(t *testing.T) {
	older := pixelKeymap(100, 100, 100, 100)
	newer := pixelKeymap(150, 150, 100, 100)
	view, _, _ := newEditView(t, older, newer)

	t.Run("empty space", func(t *testing.T) {
		hit := view.HitTest(entity.Vec{X: 600, Y: 400}, nil)
		assert.Equal(t, overlay.HitNone, hit.Kind)
		assert.Equal(t, -1, hit.Index)
	})

	t.Run("overlap resolves in list order", func(t *testing.T) {
		hit := view.HitTest(entity.Vec{X: 180, Y: 180}, nil)
		require.Equal(t, overlay.HitKeymap, hit.Kind)
		assert.Same(t, older, hit.Keymap)
		assert.Equal(t, 0, hit.Index)
	})

	t.Run("circle corners are empty", func(t *testing.T) {
		hit := view.HitTest(entity.Vec{X: 103, Y: 103}, nil)
		assert.Equal(t, overlay.HitNone, hit.Kind)
	})

	t.Run("delete affordance beats shapes", func(t *testing.T) {
		// top-right corner of the newer keymap's bounds sits at (250,150)
		hit := view.HitTest(entity.Vec{X: 245, Y: 155}, newer)
		require.Equal(t, overlay.HitDelete, hit.Kind)
		assert.Same(t, newer, hit.Keymap)
		assert.Equal(t, 1, hit.Index)
	})

	t.Run("delete affordance only for the selection", func(t *testing.T) {
		hit := view.HitTest(entity.Vec{X: 262, Y: 150}, nil)
		assert.Equal(t, overlay.HitNone, hit.Kind)

		hit = view.HitTest(entity.Vec{X: 262, Y: 150}, newer)
		assert.Equal(t, overlay.HitDelete, hit.Kind)

		hit = view.HitTest(entity.Vec{X: 264, Y: 150}, newer)
		assert.Equal(t, overlay.HitNone, hit.Kind)
	})
}

func TestView_PassThroughNeverHits(t *testing.T) {
	store, _ := newStore(t, pixelKeymap(0, 0, 500, 500))
	view := overlay.NewView(store, &fakeSurface{}, overlay.ModePassThrough, overlay.DefaultOptions())
	view.SetGeometry(editRect)

	hit := view.HitTest(entity.Vec{X: 10, Y: 10}, nil)
	assert.Equal(t, overlay.HitNone, hit.Kind)
}

func TestView_SetGeometryAppliesWhileHiddenAndIsIdempotent(t *testing.T) {
	store, _ := newStore(t)
	surface := &fakeSurface{}
	view := overlay.NewView(store, surface, overlay.ModeCapture, overlay.DefaultOptions())

	_, ok := view.Rect()
	assert.False(t, ok)

	assert.True(t, view.SetGeometry(editRect))
	assert.False(t, surface.visible)
	assert.Equal(t, editRect, surface.rect)

	assert.False(t, view.SetGeometry(editRect))
	assert.Equal(t, 1, surface.geometrySet)
}

func TestView_RepaintsOnStoreChange(t *testing.T) {
	store, _ := newStore(t)
	surface := &fakeSurface{}
	overlay.NewView(store, surface, overlay.ModePassThrough, overlay.DefaultOptions())

	before := surface.invalidated
	store.Append(pixelKeymap(0, 0, 10, 10))
	assert.Greater(t, surface.invalidated, before)
}

func TestView_RenderPlayMode(t *testing.T) {
	a := pixelKeymap(100, 100, 100, 100)
	a.Combo = entity.KeyCombo{entity.KeyShift, 'A'}
	b := pixelKeymap(400, 100, 100, 100)

	store, _ := newStore(t, a, b)
	view := overlay.NewView(store, &fakeSurface{}, overlay.ModePassThrough, overlay.DefaultOptions())
	view.SetGeometry(editRect)

	canvas := &recordingCanvas{}
	view.Render(canvas, overlay.Session{})

	assert.Equal(t, 2, canvas.count("ellipse"))
	assert.Equal(t, 0, canvas.count("line"), "no grid in play mode")
	assert.Equal(t, []string{"S+A", "KEY"}, canvas.texts())
	assert.InDelta(t, 100.0, canvas.ops[0].rect.X, 1e-9)
}

func TestView_RenderEditModeWithSelection(t *testing.T) {
	a := pixelKeymap(100, 100, 100, 100)
	a.Combo = entity.KeyCombo{'Q'}
	view, _, _ := newEditView(t, a)

	canvas := &recordingCanvas{}
	view.Render(canvas, overlay.Session{Phase: overlay.PhaseAssigningCombo, Selected: a, PendingModifier: entity.KeyControl})

	// 1000x500 rect with a 50px grid: 20 vertical + 10 horizontal lines
	assert.Equal(t, 30, canvas.count("line"))
	assert.Equal(t, 2, canvas.count("ellipse"), "shape and delete affordance")
	assert.Equal(t, []string{"C+?", "X"}, canvas.texts())
}

func TestView_RenderWithoutGeometryDrawsNothing(t *testing.T) {
	store, _ := newStore(t, pixelKeymap(0, 0, 10, 10))
	view := overlay.NewView(store, &fakeSurface{}, overlay.ModeCapture, overlay.DefaultOptions())

	canvas := &recordingCanvas{}
	view.Render(canvas, overlay.Session{})
	assert.Empty(t, canvas.ops)
}

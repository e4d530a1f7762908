package overlay_test

import (
	"context"
	"image/color"
	"testing"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/domain/entity"
	repomocks "github.com/bnema/tapmap/internal/domain/repository/mocks"
	"github.com/bnema/tapmap/internal/logging"
	"github.com/bnema/tapmap/internal/ui/overlay"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fakeSurface struct {
	rect        entity.DisplayRect
	geometrySet int
	visible     bool
	raised      int
	invalidated int
}

func (s *fakeSurface) SetGeometry(rect entity.DisplayRect) {
	s.rect = rect
	s.geometrySet++
}
func (s *fakeSurface) Show()           { s.visible = true }
func (s *fakeSurface) Hide()           { s.visible = false }
func (s *fakeSurface) IsVisible() bool { return s.visible }
func (s *fakeSurface) Raise()          { s.raised++ }
func (s *fakeSurface) Invalidate()     { s.invalidated++ }

type drawOp struct {
	op   string
	rect entity.PixelRect
	text string
}

type recordingCanvas struct {
	ops []drawOp
}

func (c *recordingCanvas) FillRect(r entity.PixelRect, _ color.RGBA) {
	c.ops = append(c.ops, drawOp{op: "fill-rect", rect: r})
}
func (c *recordingCanvas) StrokeRect(r entity.PixelRect, _ color.RGBA, _ float64) {
	c.ops = append(c.ops, drawOp{op: "stroke-rect", rect: r})
}
func (c *recordingCanvas) FillEllipse(r entity.PixelRect, _ color.RGBA) {
	c.ops = append(c.ops, drawOp{op: "ellipse", rect: r})
}
func (c *recordingCanvas) Line(_, _ entity.Vec, _ color.RGBA, _ float64) {
	c.ops = append(c.ops, drawOp{op: "line"})
}
func (c *recordingCanvas) Text(r entity.PixelRect, s string, _ color.RGBA) {
	c.ops = append(c.ops, drawOp{op: "text", rect: r, text: s})
}

func (c *recordingCanvas) count(op string) int {
	n := 0
	for _, o := range c.ops {
		if o.op == op {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) texts() []string {
	var out []string
	for _, o := range c.ops {
		if o.op == "text" {
			out = append(out, o.text)
		}
	}
	return out
}

// newStore returns a store loaded with keymaps whose saves are recorded.
func newStore(t *testing.T, keymaps ...*entity.Keymap) (*usecase.KeymapStore, *[][]*entity.Keymap) {
	t.Helper()
	repo := repomocks.NewMockKeymapRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(keymaps, nil)

	saves := &[][]*entity.Keymap{}
	repo.EXPECT().Save(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, kms []*entity.Keymap) error {
			snapshot := make([]*entity.Keymap, len(kms))
			for i, km := range kms {
				snapshot[i] = km.Clone()
			}
			*saves = append(*saves, snapshot)
			return nil
		}).Maybe()

	store := usecase.NewKeymapStore(repo)
	require.NoError(t, store.Load(testContext(), nil))
	return store, saves
}

// editRect is a 1000x500 display rect placed at a non-zero screen origin.
var editRect = entity.DisplayRect{X: 40, Y: 60, Width: 1000, Height: 500}

func newEditView(t *testing.T, keymaps ...*entity.Keymap) (*overlay.View, *fakeSurface, *[][]*entity.Keymap) {
	t.Helper()
	store, saves := newStore(t, keymaps...)
	surface := &fakeSurface{}
	view := overlay.NewView(store, surface, overlay.ModeCapture, overlay.DefaultOptions())
	view.SetGeometry(editRect)
	return view, surface, saves
}

// pixelKeymap builds a keymap from rect-local pixel bounds of editRect.
func pixelKeymap(x, y, w, h float64) *entity.Keymap {
	return entity.NewKeymap(
		entity.Vec{X: x / editRect.Width, Y: y / editRect.Height},
		entity.Vec{X: w / editRect.Width, Y: h / editRect.Height},
	)
}

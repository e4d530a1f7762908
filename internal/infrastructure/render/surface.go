package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/domain/entity"
	"github.com/bnema/tapmap/internal/logging"
)

// Painter draws one frame.
type Painter func(port.Canvas)

// PreviewSurface is an off-screen port.OverlaySurface. Every repaint while
// visible rasterizes a frame and, when a path is set, writes it as PNG.
type PreviewSurface struct {
	ctx      context.Context
	path     string
	schedule func(func())

	mu      sync.Mutex
	paint   Painter
	rect    entity.DisplayRect
	visible bool
	raised  int
	frames  int
	last    *image.RGBA
}

var _ port.OverlaySurface = (*PreviewSurface)(nil)

// NewPreviewSurface creates a surface writing frames to path (empty keeps
// frames in memory only). schedule defers repaints, typically through the
// main-loop coalescer; nil repaints synchronously.
func NewPreviewSurface(ctx context.Context, path string, schedule func(func())) *PreviewSurface {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	return &PreviewSurface{ctx: ctx, path: path, schedule: schedule}
}

// SetPainter installs the frame painter.
func (s *PreviewSurface) SetPainter(p Painter) {
	s.mu.Lock()
	s.paint = p
	s.mu.Unlock()
}

// SetGeometry implements port.OverlaySurface.
func (s *PreviewSurface) SetGeometry(rect entity.DisplayRect) {
	s.mu.Lock()
	s.rect = rect
	s.mu.Unlock()
}

// Geometry returns the last applied rect.
func (s *PreviewSurface) Geometry() entity.DisplayRect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rect
}

// Show implements port.OverlaySurface.
func (s *PreviewSurface) Show() {
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
	s.Invalidate()
}

// Hide implements port.OverlaySurface.
func (s *PreviewSurface) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

// IsVisible implements port.OverlaySurface.
func (s *PreviewSurface) IsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Raise implements port.OverlaySurface. An off-screen surface has no stacking
// order; raises are only counted.
func (s *PreviewSurface) Raise() {
	s.mu.Lock()
	s.raised++
	s.mu.Unlock()
}

// Invalidate implements port.OverlaySurface.
func (s *PreviewSurface) Invalidate() {
	s.schedule(s.Repaint)
}

// Repaint renders a frame now. Hidden surfaces and surfaces without area are skipped.
func (s *PreviewSurface) Repaint() {
	s.mu.Lock()
	paint, rect, visible := s.paint, s.rect, s.visible
	s.mu.Unlock()

	if !visible || paint == nil || rect.IsZero() {
		return
	}

	canvas := NewCanvas(int(math.Round(rect.Width)), int(math.Round(rect.Height)))
	paint(canvas)

	s.mu.Lock()
	s.frames++
	s.last = canvas.Image()
	s.mu.Unlock()

	if s.path == "" {
		return
	}
	if err := WritePNG(s.path, canvas.Image()); err != nil {
		logging.FromContext(s.ctx).Warn().Err(err).Str("path", s.path).Msg("failed to write overlay preview")
	}
}

// Frames returns how many frames were rendered.
func (s *PreviewSurface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Last returns the most recent frame, or nil.
func (s *PreviewSurface) Last() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// WritePNG encodes img to path, replacing any previous file atomically.
func WritePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create preview directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".preview-*.png")
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preview file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

package port

import (
	"image/color"

	"github.com/bnema/tapmap/internal/domain/entity"
)

// OverlaySurface is a transparent, always-on-top window the overlay draws on.
type OverlaySurface interface {
	// SetGeometry moves and resizes the surface to the given screen rect.
	SetGeometry(rect entity.DisplayRect)
	Show()
	Hide()
	IsVisible() bool
	// Raise keeps the surface above the embedded window.
	Raise()
	// Invalidate requests a repaint on the next frame.
	Invalidate()
}

// Canvas receives draw operations in surface-local pixels.
type Canvas interface {
	FillRect(r entity.PixelRect, c color.RGBA)
	StrokeRect(r entity.PixelRect, c color.RGBA, width float64)
	FillEllipse(r entity.PixelRect, c color.RGBA)
	Line(from, to entity.Vec, c color.RGBA, width float64)
	// Text draws s centered in r, shrinking the font to fit.
	Text(r entity.PixelRect, s string, c color.RGBA)
}

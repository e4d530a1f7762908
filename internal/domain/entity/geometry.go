// Package entity defines domain entities for the overlay engine.
package entity

import (
	"errors"
	"math"
)

var (
	// ErrGeometryUnavailable is returned when the container has no usable area.
	ErrGeometryUnavailable = errors.New("geometry unavailable")
	// ErrInvalidAspectRatio is returned for non-positive or non-finite ratios.
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio")
)

// Vec is a 2D value in either normalized or pixel space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Len returns the euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// ScreenRect is a container rectangle reported by the window embedder, in screen pixels.
type ScreenRect struct {
	X, Y          int // Top-left in screen coordinates
	Width, Height int
}

// DisplayRect is the letterboxed sub-rectangle of the container that actually
// shows mirrored content. It is derived on every geometry event and never persisted.
type DisplayRect struct {
	X, Y          float64
	Width, Height float64
}

// Origin returns the top-left corner.
func (r DisplayRect) Origin() Vec { return Vec{X: r.X, Y: r.Y} }

// Size returns the width and height as a vector.
func (r DisplayRect) Size() Vec { return Vec{X: r.Width, Y: r.Height} }

// IsZero reports whether the rect has no area.
func (r DisplayRect) IsZero() bool { return r.Width <= 0 || r.Height <= 0 }

// ToScreen converts a normalized point to screen pixels.
func (r DisplayRect) ToScreen(n Vec) Vec {
	return Vec{X: r.X + n.X*r.Width, Y: r.Y + n.Y*r.Height}
}

// ToLocal converts a normalized point to pixels relative to the rect origin.
func (r DisplayRect) ToLocal(n Vec) Vec {
	return Vec{X: n.X * r.Width, Y: n.Y * r.Height}
}

// ToNormalized converts a rect-local pixel point to normalized units.
func (r DisplayRect) ToNormalized(p Vec) Vec {
	if r.IsZero() {
		return Vec{}
	}
	return Vec{X: p.X / r.Width, Y: p.Y / r.Height}
}

// PixelRect is an axis-aligned rectangle in rect-local pixels.
type PixelRect struct {
	X, Y, W, H float64
}

// Center returns the center point of the rectangle.
func (p PixelRect) Center() Vec { return Vec{X: p.X + p.W/2, Y: p.Y + p.H/2} }

// Contains reports whether pt lies inside the rectangle (edges included).
func (p PixelRect) Contains(pt Vec) bool {
	return pt.X >= p.X && pt.X <= p.X+p.W && pt.Y >= p.Y && pt.Y <= p.Y+p.H
}

// ResolveDisplayRect computes the letterboxed display rect for a container and a
// content aspect ratio (native width / native height). It is pure: identical
// inputs always produce a bit-identical result.
func ResolveDisplayRect(container ScreenRect, ratio float64) (DisplayRect, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return DisplayRect{}, ErrInvalidAspectRatio
	}
	if container.Width <= 0 || container.Height <= 0 {
		return DisplayRect{}, ErrGeometryUnavailable
	}

	cw := float64(container.Width)
	ch := float64(container.Height)

	var w, h float64
	if heightIfFullWidth := cw / ratio; heightIfFullWidth <= ch {
		w, h = cw, heightIfFullWidth
	} else {
		w, h = ch*ratio, ch
	}

	return DisplayRect{
		X:      float64(container.X) + (cw-w)/2,
		Y:      float64(container.Y) + (ch-h)/2,
		Width:  w,
		Height: h,
	}, nil
}

package entity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidKeymapRecord is returned when a stored keymap cannot be decoded.
var ErrInvalidKeymapRecord = errors.New("invalid keymap record")

// ShapeKind names a keymap shape variant as it appears in storage.
type ShapeKind string

const (
	ShapeCircle    ShapeKind = "circle"
	ShapeRectangle ShapeKind = "rectangle"
)

// Shape is the visual and hit-test variant of a keymap.
type Shape interface {
	Kind() ShapeKind
	// Contains reports whether a rect-local pixel point hits the shape drawn in bounds.
	Contains(bounds PixelRect, p Vec) bool
}

// Circle is drawn as the ellipse inscribed in the keymap bounds. Keymaps are
// created square in pixels, so on screen this is a circle.
type Circle struct{}

// Kind implements Shape.
func (Circle) Kind() ShapeKind { return ShapeCircle }

// Contains implements Shape.
func (Circle) Contains(b PixelRect, p Vec) bool {
	if b.W <= 0 || b.H <= 0 {
		return false
	}
	c := b.Center()
	dx := (p.X - c.X) / (b.W / 2)
	dy := (p.Y - c.Y) / (b.H / 2)
	return dx*dx+dy*dy <= 1
}

// Rectangle fills the keymap bounds.
type Rectangle struct{}

// Kind implements Shape.
func (Rectangle) Kind() ShapeKind { return ShapeRectangle }

// Contains implements Shape.
func (Rectangle) Contains(b PixelRect, p Vec) bool { return b.Contains(p) }

// ShapeFromKind returns the variant for a stored type name.
func ShapeFromKind(kind ShapeKind) (Shape, error) {
	switch kind {
	case ShapeCircle:
		return Circle{}, nil
	case ShapeRectangle:
		return Rectangle{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrInvalidKeymapRecord, kind)
	}
}

// Keymap maps an on-screen region and a key combination to a device touch.
// Position and Size are normalized to the active display rect.
type Keymap struct {
	Position Vec
	Size     Vec
	Shape    Shape
	Combo    KeyCombo
	Hold     bool
	Label    string
}

// NewKeymap creates a circle keymap and clamps it into the unit square.
func NewKeymap(position, size Vec) *Keymap {
	km := &Keymap{
		Position: position,
		Size:     size,
		Shape:    Circle{},
	}
	km.Clamp()
	return km
}

// Clamp forces Position and Position+Size into [0,1] on both axes.
func (k *Keymap) Clamp() {
	k.Size.X = clampUnit(k.Size.X)
	k.Size.Y = clampUnit(k.Size.Y)
	k.Position.X = clampRange(k.Position.X, 0, 1-k.Size.X)
	k.Position.Y = clampRange(k.Position.Y, 0, 1-k.Size.Y)
}

// InBounds reports whether the keymap satisfies the unit-square invariant.
func (k *Keymap) InBounds() bool {
	return k.Position.X >= 0 && k.Position.Y >= 0 &&
		k.Size.X >= 0 && k.Size.Y >= 0 &&
		k.Position.X+k.Size.X <= 1+1e-12 && k.Position.Y+k.Size.Y <= 1+1e-12
}

// MoveTo sets the normalized position, keeping the keymap inside the unit square.
func (k *Keymap) MoveTo(p Vec) {
	k.Position = p
	k.Clamp()
}

// SetCombo replaces the key combination.
func (k *Keymap) SetCombo(combo KeyCombo) {
	k.Combo = append(KeyCombo(nil), combo...)
}

// Bounds returns the keymap rectangle in rect-local pixels.
func (k *Keymap) Bounds(r DisplayRect) PixelRect {
	return PixelRect{
		X: k.Position.X * r.Width,
		Y: k.Position.Y * r.Height,
		W: k.Size.X * r.Width,
		H: k.Size.Y * r.Height,
	}
}

// ShapeKind returns the kind of the keymap's shape, defaulting to circle.
func (k *Keymap) ShapeKind() ShapeKind {
	if k.Shape == nil {
		return ShapeCircle
	}
	return k.Shape.Kind()
}

// Contains hit-tests a rect-local pixel point.
func (k *Keymap) Contains(r DisplayRect, p Vec) bool {
	shape := k.Shape
	if shape == nil {
		shape = Circle{}
	}
	return shape.Contains(k.Bounds(r), p)
}

// DisplayLabel is the text drawn inside the shape.
func (k *Keymap) DisplayLabel() string {
	if k.Label != "" {
		return k.Label
	}
	return k.Combo.Label()
}

// NativeCenter returns the center of the keymap in device-native pixels,
// truncated toward zero.
func (k *Keymap) NativeCenter(native NativeSize) (x, y int) {
	w := float64(native.Width)
	h := float64(native.Height)
	return int(k.Position.X*w + k.Size.X*w/2), int(k.Position.Y*h + k.Size.Y*h/2)
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Combo = append(KeyCombo(nil), k.Combo...)
	return &c
}

// Validate checks a decoded keymap before it is accepted into a store.
func (k *Keymap) Validate() error {
	for _, v := range []float64{k.Position.X, k.Position.Y, k.Size.X, k.Size.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidKeymapRecord)
		}
	}
	if k.Size.X < 0 || k.Size.Y < 0 {
		return fmt.Errorf("%w: negative size", ErrInvalidKeymapRecord)
	}
	if len(k.Combo) > 2 {
		return fmt.Errorf("%w: combo has %d keys", ErrInvalidKeymapRecord, len(k.Combo))
	}
	if k.Shape == nil {
		return fmt.Errorf("%w: missing shape", ErrInvalidKeymapRecord)
	}
	return nil
}

// NativeSize is the fixed virtual resolution of the mirrored surface.
type NativeSize struct {
	Width, Height int
}

// AspectRatio returns width / height, or 0 when undefined.
func (n NativeSize) AspectRatio() float64 {
	if n.Height <= 0 {
		return 0
	}
	return float64(n.Width) / float64(n.Height)
}

func clampUnit(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package render rasterizes overlay draw operations into RGBA images so the
// overlay can be previewed and tested without a windowing toolkit.
package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/domain/entity"
)

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498

// Canvas is a port.Canvas backed by an *image.RGBA.
type Canvas struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	face font.Face
}

var _ port.Canvas = (*Canvas)(nil)

// NewCanvas creates a transparent canvas of w x h pixels.
func NewCanvas(w, h int) *Canvas {
	w = max(w, 1)
	h = max(h, 1)
	return &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:  vector.NewRasterizer(w, h),
		face: basicfont.Face7x13,
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// FillRect implements port.Canvas.
func (c *Canvas) FillRect(r entity.PixelRect, col color.RGBA) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.begin()
	c.rectPath(r)
	c.fill(col)
}

// StrokeRect implements port.Canvas. The stroke is centered on the outline.
func (c *Canvas) StrokeRect(r entity.PixelRect, col color.RGBA, width float64) {
	if width <= 0 {
		return
	}
	h := width / 2
	outer := entity.PixelRect{X: r.X - h, Y: r.Y - h, W: r.W + width, H: r.H + width}
	inner := entity.PixelRect{X: r.X + h, Y: r.Y + h, W: r.W - width, H: r.H - width}

	c.begin()
	c.rectPath(outer)
	if inner.W > 0 && inner.H > 0 {
		// opposite winding punches the hole
		c.ras.MoveTo(f32(inner.X), f32(inner.Y))
		c.ras.LineTo(f32(inner.X), f32(inner.Y+inner.H))
		c.ras.LineTo(f32(inner.X+inner.W), f32(inner.Y+inner.H))
		c.ras.LineTo(f32(inner.X+inner.W), f32(inner.Y))
		c.ras.ClosePath()
	}
	c.fill(col)
}

// FillEllipse implements port.Canvas with the ellipse inscribed in r.
func (c *Canvas) FillEllipse(r entity.PixelRect, col color.RGBA) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	rx, ry := r.W/2, r.H/2
	ox, oy := rx*kappa, ry*kappa

	c.begin()
	z := c.ras
	z.MoveTo(f32(cx+rx), f32(cy))
	z.CubeTo(f32(cx+rx), f32(cy+oy), f32(cx+ox), f32(cy+ry), f32(cx), f32(cy+ry))
	z.CubeTo(f32(cx-ox), f32(cy+ry), f32(cx-rx), f32(cy+oy), f32(cx-rx), f32(cy))
	z.CubeTo(f32(cx-rx), f32(cy-oy), f32(cx-ox), f32(cy-ry), f32(cx), f32(cy-ry))
	z.CubeTo(f32(cx+ox), f32(cy-ry), f32(cx+rx), f32(cy-oy), f32(cx+rx), f32(cy))
	z.ClosePath()
	c.fill(col)
}

// Line implements port.Canvas as a quad of the given width.
func (c *Canvas) Line(from, to entity.Vec, col color.RGBA, width float64) {
	d := to.Sub(from)
	length := d.Len()
	if length == 0 || width <= 0 {
		return
	}
	// unit normal scaled to half the width
	nx, ny := -d.Y/length*width/2, d.X/length*width/2

	c.begin()
	c.ras.MoveTo(f32(from.X+nx), f32(from.Y+ny))
	c.ras.LineTo(f32(to.X+nx), f32(to.Y+ny))
	c.ras.LineTo(f32(to.X-nx), f32(to.Y-ny))
	c.ras.LineTo(f32(from.X-nx), f32(from.Y-ny))
	c.ras.ClosePath()
	c.fill(col)
}

// Text implements port.Canvas. The bitmap font is drawn at its natural size
// when it fits in r and scaled down otherwise.
func (c *Canvas) Text(r entity.PixelRect, s string, col color.RGBA) {
	if s == "" || r.W <= 0 || r.H <= 0 {
		return
	}
	metrics := c.face.Metrics()
	tw := font.MeasureString(c.face, s).Ceil()
	th := metrics.Height.Ceil()
	if tw <= 0 || th <= 0 {
		return
	}

	scale := math.Min(1, math.Min(r.W/float64(tw), r.H/float64(th)))
	dw, dh := float64(tw)*scale, float64(th)*scale
	dst := image.Rect(
		int(math.Round(r.X+(r.W-dw)/2)),
		int(math.Round(r.Y+(r.H-dh)/2)),
		int(math.Round(r.X+(r.W+dw)/2)),
		int(math.Round(r.Y+(r.H+dh)/2)),
	)

	if scale == 1 {
		d := font.Drawer{
			Dst:  c.img,
			Src:  uniform(col),
			Face: c.face,
			Dot:  fixed.P(dst.Min.X, dst.Min.Y+metrics.Ascent.Ceil()),
		}
		d.DrawString(s)
		return
	}
	if dst.Empty() {
		return
	}

	tmp := image.NewRGBA(image.Rect(0, 0, tw, th))
	d := font.Drawer{
		Dst:  tmp,
		Src:  uniform(col),
		Face: c.face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(s)
	xdraw.ApproxBiLinear.Scale(c.img, dst, tmp, tmp.Bounds(), xdraw.Over, nil)
}

func (c *Canvas) begin() {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
}

func (c *Canvas) rectPath(r entity.PixelRect) {
	c.ras.MoveTo(f32(r.X), f32(r.Y))
	c.ras.LineTo(f32(r.X+r.W), f32(r.Y))
	c.ras.LineTo(f32(r.X+r.W), f32(r.Y+r.H))
	c.ras.LineTo(f32(r.X), f32(r.Y+r.H))
	c.ras.ClosePath()
}

func (c *Canvas) fill(col color.RGBA) {
	c.ras.DrawOp = xdraw.Over
	c.ras.Draw(c.img, c.img.Bounds(), uniform(col), image.Point{})
}

// uniform treats col as straight (non-premultiplied) alpha, the way overlay
// colors are specified.
func uniform(col color.RGBA) *image.Uniform {
	return image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A})
}

func f32(v float64) float32 { return float32(v) }

package numspiral

import (
	"image"
	"math"
)

// Rect is a destination rectangle in viewport pixels.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.W > 0 && r.H > 0)
}

// Bounds rounds the rectangle to whole pixels. The result may be empty.
func (r Rect) Bounds() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.X + r.W))
	y1 := int(math.Round(r.Y + r.H))
	return image.Rect(x0, y0, x1, y1)
}

// Scaled returns the rectangle multiplied by a device scale factor.
func (r Rect) Scaled(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}

// FitRect fits a raster of size src into viewport, preserving the aspect
// ratio, and centres it. It returns the destination rectangle and the uniform
// scale. Empty inputs yield an empty rectangle and a zero scale.
func FitRect(src, viewport image.Point) (Rect, float64) {
	if src.X <= 0 || src.Y <= 0 || viewport.X <= 0 || viewport.Y <= 0 {
		return Rect{}, 0
	}

	scale := math.Min(float64(viewport.X)/float64(src.X), float64(viewport.Y)/float64(src.Y))
	w := float64(src.X) * scale
	h := float64(src.Y) * scale
	return Rect{
		X: (float64(viewport.X) - w) / 2,
		Y: (float64(viewport.Y) - h) / 2,
		W: w,
		H: h,
	}, scale
}

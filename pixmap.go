package numspiral

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is the persistent raster surface the driver draws into.
//
// Pixels are stored as 8-bit non-premultiplied RGBA, 4 bytes per pixel, rows
// top to bottom. Writes outside the bounds are ignored.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a pixmap with the given dimensions, transparent black.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Size returns the dimensions as a point.
func (p *Pixmap) Size() image.Point {
	return image.Pt(p.width, p.height)
}

// Data returns the raw pixel data (non-premultiplied RGBA). The slice aliases
// the pixmap.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel replaces the pixel at (x, y).
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// Pixel returns the pixel at (x, y), or Transparent outside the bounds.
func (p *Pixmap) Pixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	if len(p.data) == 0 {
		return
	}
	p.data[0], p.data[1], p.data[2], p.data[3] = c.R, c.G, c.B, c.A
	// Doubling copy fills the rest without a per-pixel loop.
	for filled := 4; filled < len(p.data); filled *= 2 {
		copy(p.data[filled:], p.data[:filled])
	}
}

// Count returns the number of pixels equal to c.
func (p *Pixmap) Count(c Color) int {
	n := 0
	for i := 0; i < len(p.data); i += 4 {
		if p.data[i] == c.R && p.data[i+1] == c.G && p.data[i+2] == c.B && p.data[i+3] == c.A {
			n++
		}
	}
	return n
}

// ToImage copies the pixmap into a new image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

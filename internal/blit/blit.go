// Package blit scales a raster into a viewport-sized frame.
package blit

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ErrUnknownScaler is returned for a scaler name Interpolator does not know.
var ErrUnknownScaler = errors.New("blit: unknown scaler")

// Scaler names an interpolation kernel.
type Scaler string

// Available scalers. Nearest keeps single-pixel points crisp and is the
// default; the smoothing kernels blur them.
const (
	Nearest        Scaler = "nearest"
	ApproxBiLinear Scaler = "approx"
	BiLinear       Scaler = "bilinear"
	CatmullRom     Scaler = "catmullrom"
)

// Scalers lists the known scaler names.
func Scalers() []Scaler {
	return []Scaler{Nearest, ApproxBiLinear, BiLinear, CatmullRom}
}

// Interpolator returns the kernel for the scaler. The empty name selects
// Nearest.
func (s Scaler) Interpolator() (xdraw.Interpolator, error) {
	switch s {
	case Nearest, "":
		return xdraw.NearestNeighbor, nil
	case ApproxBiLinear:
		return xdraw.ApproxBiLinear, nil
	case BiLinear:
		return xdraw.BiLinear, nil
	case CatmullRom:
		return xdraw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScaler, s)
	}
}

// Frame renders src scaled into dst over a background, on a new canvas of
// the given size.
func Frame(size image.Point, bg color.Color, src image.Image, dst image.Rectangle, interp xdraw.Interpolator) *image.RGBA {
	frame := image.NewRGBA(image.Rectangle{Max: size})
	Into(frame, bg, src, dst, interp)
	return frame
}

// Into fills frame with bg and scales src into dst. Parts of dst outside the
// frame are clipped.
func Into(frame xdraw.Image, bg color.Color, src image.Image, dst image.Rectangle, interp xdraw.Interpolator) {
	xdraw.Draw(frame, frame.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	if dst.Empty() || src.Bounds().Empty() {
		return
	}
	if interp == nil {
		interp = xdraw.NearestNeighbor
	}
	interp.Scale(frame, dst, src, src.Bounds(), xdraw.Over, nil)
}

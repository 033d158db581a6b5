package numspiral

import "image"

// Surface is the persistent raster the driver draws into.
//
// A Surface is written only from inside Driver.Tick and read by presenters
// inside Present or between ticks, so implementations need no locking.
// Writes outside Bounds must be ignored.
type Surface interface {
	image.Image

	// SetPixel replaces the pixel at (x, y).
	SetPixel(x, y int, c Color)

	// Clear fills the entire surface with the given color.
	Clear(c Color)
}

// Presenter blits the surface into the viewport. The driver calls Present
// once per tick, after the batch has been drawn.
type Presenter interface {
	Present(s Surface, dst Rect)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(s Surface, dst Rect)

// Present implements Presenter.
func (f PresenterFunc) Present(s Surface, dst Rect) { f(s, dst) }

// Host supplies the per-frame inputs the driver consumes.
type Host interface {
	// ViewportSize returns the current drawable size in pixels.
	ViewportSize() image.Point

	// ShouldStop reports whether an external shutdown was requested.
	ShouldStop() bool
}

// StaticHost is a Host with a fixed viewport that never asks to stop.
type StaticHost image.Point

// ViewportSize implements Host.
func (h StaticHost) ViewportSize() image.Point { return image.Point(h) }

// ShouldStop implements Host.
func (StaticHost) ShouldStop() bool { return false }

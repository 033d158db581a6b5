// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"image"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/internal/blit"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operating on a closed canvas.
	ErrCanvasClosed = errors.New("gpucanvas: canvas is closed")

	// ErrInvalidDimensions is returned when a frame has no area.
	ErrInvalidDimensions = errors.New("gpucanvas: invalid dimensions")
)

// textureDestroyer is implemented by textures that hold GPU memory.
type textureDestroyer interface {
	Destroy()
}

// Canvas scales presented rasters into a GPU texture.
//
// The texture is created lazily on the first RenderTo and updated in place
// while the destination size is unchanged. When the size changes the old
// texture is kept until its replacement exists, then destroyed.
type Canvas struct {
	interp     xdraw.Interpolator
	background numspiral.Color

	frame  *image.RGBA // destination-sized, premultiplied
	origin image.Point

	texture     any  // Lazy-created texture (gpucontext.Texture)
	oldTexture  any  // Previous texture awaiting deferred destruction
	dirty       bool // Needs GPU upload
	sizeChanged bool // Texture must be recreated
	closed      bool
}

// New creates a canvas that scales with the named scaler over background.
func New(scaler blit.Scaler, background numspiral.Color) (*Canvas, error) {
	interp, err := scaler.Interpolator()
	if err != nil {
		return nil, err
	}
	return &Canvas{interp: interp, background: background}, nil
}

// Present implements numspiral.Presenter. Empty rectangles and closed
// canvases are ignored.
func (c *Canvas) Present(s numspiral.Surface, dst numspiral.Rect) {
	if c.closed {
		return
	}
	b := dst.Bounds()
	if b.Empty() {
		return
	}

	size := b.Size()
	if c.frame == nil || c.frame.Bounds().Size() != size {
		if c.frame != nil {
			c.sizeChanged = true
		}
		c.frame = image.NewRGBA(image.Rectangle{Max: size})
	}
	c.origin = b.Min

	blit.Into(c.frame, c.background, s, c.frame.Bounds(), c.interp)
	c.dirty = true
}

// Frame returns the composed frame, or nil before the first Present.
func (c *Canvas) Frame() *image.RGBA {
	return c.frame
}

// Origin returns where the frame is drawn in the window.
func (c *Canvas) Origin() image.Point {
	return c.origin
}

// Size returns the frame dimensions.
func (c *Canvas) Size() (width, height int) {
	if c.frame == nil {
		return 0, 0
	}
	s := c.frame.Bounds().Size()
	return s.X, s.Y
}

// IsDirty reports whether the frame changed since the last upload.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Texture returns the current texture, if any.
func (c *Canvas) Texture() any {
	return c.texture
}

// Flush prepares the texture for drawing and returns it. Before a GPU
// texture exists it returns a pending texture that RenderTo turns into a
// real one. It returns nil when nothing was presented yet.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	if c.frame == nil {
		return nil, nil
	}

	// Defer destruction of the old texture until the new one exists.
	if c.sizeChanged {
		if c.texture != nil {
			destroy(c.oldTexture)
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	if c.texture == nil {
		w, h := c.Size()
		c.texture = &pendingTexture{width: w, height: h, data: c.frame.Pix}
		c.dirty = false
		return c.texture, nil
	}

	if err := updateTexture(c.texture, c.frame.Pix); err != nil {
		return nil, err
	}
	c.dirty = false
	return c.texture, nil
}

// Close releases GPU resources. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	destroy(c.oldTexture)
	c.oldTexture = nil
	destroy(c.texture)
	c.texture = nil
	c.frame = nil
	return nil
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// pendingTexture holds frame data until a texture creator is available.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Window is a numspiral.Host for a gogpu window. The draw callback reports
// the window size with Resize; input handlers call Quit.
type Window struct {
	width, height atomic.Int32
	quit          atomic.Bool
}

// Resize records the drawable size.
func (w *Window) Resize(width, height int) {
	w.width.Store(int32(width))
	w.height.Store(int32(height))
}

// ViewportSize implements numspiral.Host.
func (w *Window) ViewportSize() image.Point {
	return image.Pt(int(w.width.Load()), int(w.height.Load()))
}

// ShouldStop implements numspiral.Host.
func (w *Window) ShouldStop() bool {
	return w.quit.Load()
}

// Quit asks the run to stop. Safe for concurrent use.
func (w *Window) Quit() {
	w.quit.Store(true)
}

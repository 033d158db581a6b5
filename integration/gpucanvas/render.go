// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidTexture is returned when a created texture cannot be drawn.
	ErrInvalidTexture = errors.New("gpucanvas: texture does not implement gpucontext.Texture")

	// ErrInvalidRenderer is returned when the draw context cannot create
	// textures.
	ErrInvalidRenderer = errors.New("gpucanvas: draw context has no texture creator")
)

// RenderTo uploads the frame if needed and draws it at the destination
// origin. It draws nothing before the first Present.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		driver.Frame(win, elapsed)
//		canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	if c.closed {
		return ErrCanvasClosed
	}

	tex, err := c.Flush()
	if err != nil {
		return err
	}
	if tex == nil {
		return nil
	}

	// Turn a pending texture into a real one.
	if pending, isPending := tex.(*pendingTexture); isPending {
		if pending.width <= 0 || pending.height <= 0 {
			return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, pending.width, pending.height)
		}
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("gpucanvas: NewTextureFromRGBA failed: %w", err)
		}

		// image.RGBA holds premultiplied pixels.
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}

		c.texture = realTex
		tex = realTex

		destroy(c.oldTexture)
		c.oldTexture = nil
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}

	return dc.DrawTexture(gpuTex, float32(c.origin.X), float32(c.origin.Y))
}

// updateTexture uploads data into an existing texture.
func updateTexture(tex any, data []byte) error {
	updater, ok := tex.(gpucontext.TextureUpdater)
	if !ok {
		return nil
	}
	if err := updater.UpdateData(data); err != nil {
		return fmt.Errorf("gpucanvas: texture update failed: %w", err)
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucanvas presents a driver's raster in a gogpu window.
//
// The data flow is:
//
//	numspiral.Surface -> scaled frame (CPU) -> GPU Texture -> Window
//
// # Architecture
//
// Canvas implements numspiral.Presenter:
//
//   - Present scales the raster into a frame the size of the destination
//     rectangle and marks it dirty
//   - Flush uploads the frame to a GPU texture when dirty
//   - RenderTo draws the texture at the rectangle origin
//
// Window implements numspiral.Host on top of the sizes reported by the
// window's draw callback.
//
// # Usage
//
//	canvas, _ := gpucanvas.New(blit.Nearest, cfg.Background)
//	defer canvas.Close()
//	win := &gpucanvas.Window{}
//	driver, _ := numspiral.NewDriver(cfg, numspiral.WithPresenter(canvas))
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		win.Resize(dc.Width(), dc.Height())
//		driver.Frame(win, elapsed)
//		canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Present and RenderTo must run on the
// draw callback's goroutine. Window.Quit may be called from anywhere.
package gpucanvas

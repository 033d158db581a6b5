package main

import (
	"context"
	"image"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/spf13/cobra"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/integration/gpucanvas"
	"github.com/gogpu/numspiral/internal/blit"
)

func newWindowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Draw in a GPU window",
		Long: `window opens a GPU window and draws one batch per frame. The raster is
fitted into the window and letterboxed. Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd.Context(), a)
		},
	}
}

func runWindow(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	canvas, err := gpucanvas.New(blit.Scaler(a.scaler), a.cfg.Background)
	if err != nil {
		return err
	}
	defer canvas.Close()

	d, err := a.newDriver(ctx, numspiral.WithPresenter(canvas))
	if err != nil {
		return err
	}

	cfg := a.cfg
	gui := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.WindowWidth, cfg.WindowHeight).
		WithContinuousRender(true))

	win := &gpucanvas.Window{}
	finished := false
	last := time.Now()

	gui.OnDraw(func(dc *gogpu.Context) {
		if ctx.Err() != nil || win.ShouldStop() {
			win.Quit()
			gui.Quit()
			return
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		resized := win.ViewportSize() != image.Pt(w, h)
		win.Resize(w, h)

		now := time.Now()
		elapsed := now.Sub(last)
		last = now
		switch {
		case !finished:
			if !d.Frame(win, elapsed) {
				finished = true
				numspiral.Logger().Info("window run finished",
					"reason", d.Reason(), "index", d.Index(), "ticks", d.Ticks())
			}
		case resized:
			// Finished run: refit the last raster to the new window.
			dst, _ := numspiral.FitRect(d.Size(), win.ViewportSize())
			canvas.Present(d.Surface(), dst)
		}

		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			numspiral.Logger().Warn("frame render failed", "err", err)
		}
	})

	gui.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			win.Quit()
			gui.Quit()
		}
	})

	gui.OnClose(func() {
		win.Quit()
		d.Stop()
		_ = canvas.Close()
	})

	return gui.Run()
}

package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/integration/headless"
	"github.com/gogpu/numspiral/internal/blit"
)

type renderOptions struct {
	output   string
	viewport string
	raw      bool
	realtime bool
	maxTicks uint64
}

func newRenderCmd(a *app) *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run to the ceiling without a display and save a PNG",
		Long: `render drives the run headless until the ceiling is reached (or
--max-ticks, or an interrupt) and writes the result as a PNG.

By default the raster is fitted into a viewport the size of the window, as
a windowed run would show it. --raw saves the raster itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "numspiral.png", "output PNG file")
	f.StringVar(&o.viewport, "viewport", "", "viewport as WIDTHxHEIGHT (default: window size)")
	f.BoolVar(&o.raw, "raw", false, "save the raster instead of the fitted viewport")
	f.BoolVar(&o.realtime, "realtime", false, "pace ticks at --tps instead of running flat out")
	f.Uint64Var(&o.maxTicks, "max-ticks", 0, "stop after this many ticks (0: no limit)")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, o renderOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	viewport := a.cfg.WindowSize()
	if o.viewport != "" {
		v, err := parseSize(o.viewport)
		if err != nil {
			return err
		}
		viewport = v
	}

	presenter, err := headless.NewPresenter(blit.Scaler(a.scaler), a.cfg.Background)
	if err != nil {
		return err
	}
	d, err := a.newDriver(ctx, numspiral.WithPresenter(presenter))
	if err != nil {
		return err
	}

	opts := headless.Options{
		Viewport: viewport,
		Scale:    a.cfg.Scale,
		MaxTicks: o.maxTicks,
	}
	if o.realtime {
		opts.Interval = a.interval()
	}
	res, err := headless.Run(ctx, d, opts)
	if err != nil {
		return err
	}

	var img image.Image
	if o.raw {
		img = d.Surface()
	} else {
		frame := presenter.Snapshot(headless.ScaleViewport(viewport, a.cfg.Scale))
		if frame == nil {
			return fmt.Errorf("nothing was presented before the run stopped (%s)", res.Reason)
		}
		img = frame
	}
	if err := headless.SavePNG(o.output, img); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ticks, next index %d, %s, stopped by %s\n",
		o.output, res.Ticks, res.Index, res.Duration.Round(time.Millisecond), res.Reason)
	return nil
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (image.Point, error) {
	var p image.Point
	var rest string
	n, _ := fmt.Sscanf(s, "%dx%d%s", &p.X, &p.Y, &rest)
	if n != 2 || p.X <= 0 || p.Y <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	return p, nil
}

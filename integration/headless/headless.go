// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless runs a driver without a display and renders its frames
// into images.
package headless

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/internal/blit"
)

// ErrInvalidViewport is returned when Run is given an empty viewport.
var ErrInvalidViewport = errors.New("headless: invalid viewport")

// Presenter keeps the last presented surface and destination rectangle and
// renders frames from them on demand.
//
// Present only records; scaling happens in Snapshot so a long run costs
// nothing until a frame is wanted.
type Presenter struct {
	interp     xdraw.Interpolator
	background numspiral.Color

	surface  numspiral.Surface
	dst      numspiral.Rect
	presents int
}

// NewPresenter creates a presenter using the named scaler.
func NewPresenter(scaler blit.Scaler, background numspiral.Color) (*Presenter, error) {
	interp, err := scaler.Interpolator()
	if err != nil {
		return nil, err
	}
	return &Presenter{interp: interp, background: background}, nil
}

// Present implements numspiral.Presenter.
func (p *Presenter) Present(s numspiral.Surface, dst numspiral.Rect) {
	p.surface = s
	p.dst = dst
	p.presents++
}

// Presents returns the number of Present calls.
func (p *Presenter) Presents() int {
	return p.presents
}

// Dest returns the last destination rectangle.
func (p *Presenter) Dest() numspiral.Rect {
	return p.dst
}

// Snapshot renders the last presented surface into a frame of the given
// viewport size. It returns nil before the first Present.
func (p *Presenter) Snapshot(viewport image.Point) *image.RGBA {
	if p.surface == nil {
		return nil
	}
	return blit.Frame(viewport, p.background, p.surface, p.dst.Bounds(), p.interp)
}

// Options configures Run.
type Options struct {
	// Viewport is the size the raster is fitted into each tick.
	Viewport image.Point

	// Scale multiplies Viewport, as a HiDPI display would. Zero means 1.
	Scale float64

	// Interval paces the ticks. Zero runs them back to back.
	Interval time.Duration

	// MaxTicks stops the run after that many ticks. Zero means no limit.
	MaxTicks uint64
}

// Result summarises a finished run.
type Result struct {
	Ticks    uint64
	Index    uint64
	Reason   numspiral.StopReason
	Duration time.Duration
}

// host adapts Options and a context to numspiral.Host.
type host struct {
	ctx      context.Context
	viewport image.Point
	driver   *numspiral.Driver
	maxTicks uint64
}

func (h *host) ViewportSize() image.Point { return h.viewport }

func (h *host) ShouldStop() bool {
	if h.ctx.Err() != nil {
		return true
	}
	return h.maxTicks > 0 && h.driver.Ticks() >= h.maxTicks
}

// Run ticks d until it stops, ctx is cancelled, or MaxTicks is reached.
// Cancellation is observed between ticks and is not an error.
func Run(ctx context.Context, d *numspiral.Driver, opts Options) (Result, error) {
	if opts.Viewport.X <= 0 || opts.Viewport.Y <= 0 {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, opts.Viewport.X, opts.Viewport.Y)
	}

	h := &host{
		ctx:      ctx,
		viewport: ScaleViewport(opts.Viewport, opts.Scale),
		driver:   d,
		maxTicks: opts.MaxTicks,
	}

	var ticker *time.Ticker
	if opts.Interval > 0 {
		ticker = time.NewTicker(opts.Interval)
		defer ticker.Stop()
	}

	begin := time.Now()
	last := begin
	for {
		now := time.Now()
		if !d.Frame(h, now.Sub(last)) {
			break
		}
		last = now

		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}

	res := Result{
		Ticks:    d.Ticks(),
		Index:    d.Index(),
		Reason:   d.Reason(),
		Duration: time.Since(begin),
	}
	numspiral.Logger().Info("headless run finished",
		"ticks", res.Ticks, "index", res.Index, "reason", res.Reason, "duration", res.Duration)
	return res, nil
}

// ScaleViewport multiplies a viewport by a device scale factor. Non-positive
// scales leave it unchanged.
func ScaleViewport(v image.Point, scale float64) image.Point {
	if !(scale > 0) || scale == 1 {
		return v
	}
	return image.Pt(int(math.Round(float64(v.X)*scale)), int(math.Round(float64(v.Y)*scale)))
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("headless: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("headless: encode %s: %w", path, err)
	}
	return f.Close()
}

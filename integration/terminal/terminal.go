// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package terminal presents a driver's raster in a terminal using tcell.
//
// Each cell shows two raster rows with an upper half block: the foreground
// is the top pixel and the background the bottom one, so the viewport is
// columns × (rows·2) pixels.
package terminal

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/internal/blit"
)

const halfBlock = '▀'

// DefaultInterval is the tick interval used when Options leaves it zero.
const DefaultInterval = 16 * time.Millisecond

// Options configures a Terminal.
type Options struct {
	// Scaler selects the kernel used to fit the raster into the cells.
	Scaler blit.Scaler

	// Background fills the letterbox around the raster.
	Background numspiral.Color

	// Interval between ticks. Zero means DefaultInterval.
	Interval time.Duration

	// Hold keeps the last frame on screen after the run stops, until a quit
	// key is pressed.
	Hold bool
}

// Terminal is a numspiral.Host and numspiral.Presenter backed by a tcell
// screen.
type Terminal struct {
	screen tcell.Screen
	interp xdraw.Interpolator
	opts   Options

	frame *image.RGBA
	quit  atomic.Bool
}

// New creates a terminal host on an initialised screen. The caller owns the
// screen and must Fini it.
func New(screen tcell.Screen, opts Options) (*Terminal, error) {
	interp, err := opts.Scaler.Interpolator()
	if err != nil {
		return nil, err
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Terminal{screen: screen, interp: interp, opts: opts}, nil
}

// ViewportSize implements numspiral.Host.
func (t *Terminal) ViewportSize() image.Point {
	w, h := t.screen.Size()
	return image.Pt(w, h*2)
}

// ShouldStop implements numspiral.Host.
func (t *Terminal) ShouldStop() bool {
	return t.quit.Load()
}

// Quit asks the run to stop. Safe for concurrent use.
func (t *Terminal) Quit() {
	t.quit.Store(true)
}

// Present implements numspiral.Presenter.
func (t *Terminal) Present(s numspiral.Surface, dst numspiral.Rect) {
	size := t.ViewportSize()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if t.frame == nil || t.frame.Bounds().Size() != size {
		t.frame = image.NewRGBA(image.Rectangle{Max: size})
	}
	blit.Into(t.frame, t.opts.Background, s, dst.Bounds(), t.interp)

	for y := 0; y+1 < size.Y; y += 2 {
		for x := 0; x < size.X; x++ {
			top := t.frame.RGBAAt(x, y)
			bottom := t.frame.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// HandleEvent processes one input event and reports whether the run should
// go on. Esc, q and Ctrl-C quit; a resize resynchronises the screen.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
			t.Quit()
			return false
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Run drives d on a ticker until it stops, a quit key is pressed or ctx is
// cancelled. Input is read on its own goroutine; ticks stay on the calling
// goroutine.
func (t *Terminal) Run(ctx context.Context, d *numspiral.Driver) error {
	ticker := time.NewTicker(t.opts.Interval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	running := true
	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return nil
		case ev := <-events:
			if !t.HandleEvent(ev) {
				d.Stop()
				return nil
			}
		case now := <-ticker.C:
			if !running {
				continue
			}
			if !d.Frame(t, now.Sub(last)) {
				running = false
				numspiral.Logger().Info("terminal run finished",
					"reason", d.Reason(), "index", d.Index(), "ticks", d.Ticks())
				if !t.opts.Hold {
					return nil
				}
			}
			last = now
		}
	}
}

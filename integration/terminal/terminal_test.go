// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package terminal

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/walk"
)

var (
	_ numspiral.Host      = (*Terminal)(nil)
	_ numspiral.Presenter = (*Terminal)(nil)
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func smallDriver(t *testing.T, term *Terminal, size int, ceiling uint64) *numspiral.Driver {
	t.Helper()
	cfg := numspiral.DefaultConfig()
	cfg.Width, cfg.Height = size, size
	cfg.Path = walk.PolicyRing
	cfg.Batch = 50
	cfg.Ceiling = ceiling
	d, err := numspiral.NewDriver(cfg, numspiral.WithPresenter(term))
	require.NoError(t, err)
	return d
}

func TestViewportSize(t *testing.T) {
	screen := newScreen(t, 20, 10)
	term, err := New(screen, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 20), term.ViewportSize())
}

func TestPresentHalfBlocks(t *testing.T) {
	screen := newScreen(t, 20, 10)
	term, err := New(screen, Options{Background: numspiral.Black})
	require.NoError(t, err)

	pm := numspiral.NewPixmap(4, 4)
	pm.Clear(numspiral.Black)
	pm.SetPixel(1, 2, numspiral.White)

	dst, scale := numspiral.FitRect(pm.Size(), term.ViewportSize())
	require.InDelta(t, 5.0, scale, 1e-12)
	term.Present(pm, dst)

	white := tcell.NewRGBColor(255, 255, 255)
	black := tcell.NewRGBColor(0, 0, 0)

	tests := []struct {
		x, y   int
		fg, bg tcell.Color
	}{
		{0, 0, black, black},
		{6, 5, white, white}, // rows 10 and 11
		{6, 7, white, black}, // rows 14 and 15
		{6, 4, black, black},
		{12, 5, black, black},
	}
	for _, tt := range tests {
		r, _, style, _ := screen.GetContent(tt.x, tt.y)
		fg, bg, _ := style.Decompose()
		assert.Equal(t, halfBlock, r, "(%d,%d)", tt.x, tt.y)
		assert.Equal(t, tt.fg, fg, "fg (%d,%d)", tt.x, tt.y)
		assert.Equal(t, tt.bg, bg, "bg (%d,%d)", tt.x, tt.y)
	}
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
		{"resize", tcell.NewEventResize(40, 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := New(newScreen(t, 10, 10), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, term.HandleEvent(tt.ev))
			assert.Equal(t, !tt.want, term.ShouldStop())
		})
	}
}

func TestRunToCeiling(t *testing.T) {
	screen := newScreen(t, 16, 8)
	term, err := New(screen, Options{Interval: time.Millisecond})
	require.NoError(t, err)

	d := smallDriver(t, term, 32, 200)
	require.NoError(t, term.Run(context.Background(), d))
	assert.True(t, d.Stopped())
	assert.Equal(t, numspiral.ReasonCeiling, d.Reason())
	assert.Equal(t, uint64(4), d.Ticks())
}

func TestRunQuitKey(t *testing.T) {
	screen := newScreen(t, 16, 8)
	term, err := New(screen, Options{Interval: time.Millisecond})
	require.NoError(t, err)

	// Large enough that the run cannot finish before the key is read.
	d := smallDriver(t, term, 1024, 1<<20)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	require.NoError(t, term.Run(context.Background(), d))
	assert.True(t, term.ShouldStop())
	assert.False(t, d.Tick(0, term.ViewportSize()))
	assert.Equal(t, numspiral.ReasonShutdown, d.Reason())
}

func TestRunHoldUntilCancelled(t *testing.T) {
	screen := newScreen(t, 16, 8)
	term, err := New(screen, Options{Interval: time.Millisecond, Hold: true})
	require.NoError(t, err)

	d := smallDriver(t, term, 32, 100)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, term.Run(ctx, d))

	assert.Equal(t, numspiral.ReasonCeiling, d.Reason(), "run finished before the hold ended")
	assert.Equal(t, uint64(2), d.Ticks())
}

func TestNewUnknownScaler(t *testing.T) {
	_, err := New(newScreen(t, 4, 4), Options{Scaler: "lanczos"})
	require.Error(t, err)
}

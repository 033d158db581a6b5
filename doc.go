// Package numspiral draws number-theoretic patterns along spirals.
//
// # Overview
//
// A run maps a monotonically increasing index onto raster coordinates along
// a spiral, classifies every index (prime factors, Collatz trajectory length,
// perfect squares) and colours the pixel by its class. The raster persists for
// the whole run and is presented, scaled to fit, once per tick.
//
// # Quick Start
//
//	import "github.com/gogpu/numspiral"
//
//	cfg := numspiral.DefaultConfig()
//	cfg.Path = walk.PolicySquare
//
//	d, err := numspiral.NewDriver(cfg)
//	if err != nil {
//		return err
//	}
//	for d.Tick(16*time.Millisecond, image.Pt(1024, 1024)) {
//	}
//	d.Surface().(*numspiral.Pixmap).SavePNG("ulam.png")
//
// # Architecture
//
// The module is organized into:
//   - walk: path policies (arc, square, ring) and the index walker
//   - classify: classifiers (factors, collatz, squares)
//   - numspiral: Driver, Config, Palette, Pixmap and the host interfaces
//   - integration/headless, integration/terminal, integration/gpucanvas:
//     hosts that present the raster to a file, a terminal or a GPU window
//
// The driver never owns a window or reads input. Each tick a Host supplies
// the viewport size and the shutdown signal, and a Presenter blits the raster
// into the destination rectangle.
//
// # Logging
//
// The package logs nothing by default. Use SetLogger to enable output:
//
//	numspiral.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
package numspiral

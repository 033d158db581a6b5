package numspiral

import (
	"fmt"
	"image"
	"math"
	"sync/atomic"
	"time"

	"github.com/gogpu/numspiral/classify"
	"github.com/gogpu/numspiral/walk"
)

// State is the lifecycle state of a Driver.
type State uint8

const (
	// Running is entered once, when the driver is constructed.
	Running State = iota
	// Stopped is permanent; further ticks are no-ops.
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// StopReason tells why a driver stopped.
type StopReason uint8

// Stop reasons.
const (
	ReasonNone StopReason = iota
	ReasonCeiling
	ReasonShutdown
)

// String returns the reason name.
func (r StopReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonCeiling:
		return "ceiling"
	case ReasonShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("StopReason(%d)", r)
	}
}

// TickStats describes one completed tick.
type TickStats struct {
	Tick    uint64 // 1-based tick number
	First   uint64 // first index of the batch
	Next    uint64 // index the next batch starts at
	Drawn   int    // pixels written
	Skipped int    // points whose colour had zero alpha
	Clipped int    // visible points outside the raster
	Cached  int    // classifier cache size, when it has one

	Elapsed time.Duration // frame time reported by the host
	Busy    time.Duration // time spent drawing and presenting
	Dest    Rect
}

// Observer receives driver statistics. Calls happen on the ticking goroutine.
type Observer interface {
	ObserveTick(s TickStats)
	ObserveStop(reason StopReason, index uint64)
}

type nopObserver struct{}

func (nopObserver) ObserveTick(TickStats)         {}
func (nopObserver) ObserveStop(StopReason, uint64) {}

// Driver advances the walk, classifies every index and draws the result into
// a persistent raster, one batch per tick.
//
// A Driver is not safe for concurrent use, except Stop, which may be called
// from any goroutine.
type Driver struct {
	cfg        Config
	surface    Surface
	size       image.Point
	walker     *walk.Walker
	classifier classify.Classifier
	palette    Palette
	presenter  Presenter
	observer   Observer

	ceiling uint64
	ticks   uint64
	state   State
	reason  StopReason
	stop    atomic.Bool

	overflowSeen bool
}

// NewDriver validates cfg, builds the components it names unless options
// replace them, clears the raster and returns a running driver.
func NewDriver(cfg Config, opts ...DriverOption) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o driverOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.surface == nil {
		o.surface = NewPixmap(cfg.Width, cfg.Height)
	}
	size := o.surface.Bounds().Size()

	if o.path == nil {
		p, err := walk.New(cfg.Path, walk.Options{Size: size, Step: cfg.Step})
		if err != nil {
			return nil, err
		}
		o.path = p
	}
	if o.classifier == nil {
		memo := cfg.CollatzMemo
		if memo == 0 {
			memo = -1
		}
		c, err := classify.New(cfg.Classifier, classify.Options{
			Capacity: cfg.CacheCapacity,
			Mode:     cfg.CollatzMode,
			Limit:    cfg.CollatzLimit,
			Memo:     memo,
		})
		if err != nil {
			return nil, err
		}
		o.classifier = c
	}
	if w, ok := o.classifier.(classify.Warmer); ok && cfg.Start > 2 {
		begin := time.Now()
		w.Warm(cfg.Start)
		Logger().Info("classifier warmed",
			"below", cfg.Start, "duration", time.Since(begin))
	}
	if o.palette == nil {
		p, err := NewPalette(cfg.Palette, cfg.Classifier)
		if err != nil {
			return nil, err
		}
		o.palette = p
	}
	if o.presenter == nil {
		o.presenter = PresenterFunc(func(Surface, Rect) {})
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	d := &Driver{
		cfg:        cfg,
		surface:    o.surface,
		size:       size,
		walker:     walk.NewWalker(o.path, cfg.Start, cfg.Stride),
		classifier: o.classifier,
		palette:    o.palette,
		presenter:  o.presenter,
		observer:   o.observer,
		ceiling:    cfg.Ceiling,
	}

	if limit := reachable(cfg.Start, o.path.Capacity(), cfg.Stride); limit < d.ceiling {
		Logger().Info("ceiling clamped to path capacity",
			"configured", cfg.Ceiling, "ceiling", limit, "path", cfg.Path)
		d.ceiling = limit
	}

	d.surface.Clear(cfg.Background)
	d.state = Running

	Logger().Info("driver started",
		"raster", size, "path", cfg.Path, "classifier", cfg.Classifier,
		"start", cfg.Start, "stride", cfg.Stride, "ceiling", d.ceiling, "batch", cfg.Batch)
	return d, nil
}

// reachable returns the first index the path can no longer place inside the
// raster, saturating at MaxUint64.
func reachable(start, capacity, stride uint64) uint64 {
	if capacity > (math.MaxUint64-start)/stride {
		return math.MaxUint64
	}
	return start + capacity*stride
}

// Tick draws one batch and presents the raster. It returns false once the
// run is over: the next index reached the ceiling, or a shutdown was
// requested. The check happens before the batch, so the last batch may run
// past the ceiling. Ticks after the driver stopped do nothing.
func (d *Driver) Tick(elapsed time.Duration, viewport image.Point) bool {
	if d.state == Stopped {
		return false
	}
	if d.stop.Load() {
		d.finish(ReasonShutdown)
		return false
	}
	if d.walker.Index() >= d.ceiling {
		d.finish(ReasonCeiling)
		return false
	}

	begin := time.Now()
	dst, _ := FitRect(d.size, viewport)
	stats := TickStats{
		Tick:    d.ticks + 1,
		First:   d.walker.Index(),
		Elapsed: elapsed,
		Dest:    dst,
	}

	bounds := image.Rectangle{Max: d.size}
	for range d.cfg.Batch {
		n, pos := d.walker.Next()
		class := d.classifier.Classify(n)
		if class.Kind == classify.KindOverflow && !d.overflowSeen {
			d.overflowSeen = true
			Logger().Warn("classifier overflow, drawing sentinel colour from here on",
				"index", n, "classifier", d.cfg.Classifier)
		}

		c := d.palette.Color(class)
		if !c.Visible() {
			stats.Skipped++
			continue
		}
		px := pos.Pixel()
		if !px.In(bounds) {
			stats.Clipped++
			continue
		}
		d.surface.SetPixel(px.X, px.Y, c)
		stats.Drawn++
	}

	stats.Next = d.walker.Index()
	if s, ok := d.classifier.(classify.Sizer); ok {
		stats.Cached = s.Len()
	}
	d.ticks++

	d.presenter.Present(d.surface, dst)

	stats.Busy = time.Since(begin)
	d.observer.ObserveTick(stats)
	Logger().Debug("tick",
		"tick", stats.Tick, "next", stats.Next, "drawn", stats.Drawn,
		"skipped", stats.Skipped, "clipped", stats.Clipped, "busy", stats.Busy)
	return true
}

// Frame polls host for the shutdown signal and viewport size, then ticks.
func (d *Driver) Frame(host Host, elapsed time.Duration) bool {
	if host.ShouldStop() {
		d.Stop()
	}
	return d.Tick(elapsed, host.ViewportSize())
}

// Stop requests a shutdown. It is observed at the start of the next tick.
// Safe for concurrent use.
func (d *Driver) Stop() {
	d.stop.Store(true)
}

func (d *Driver) finish(reason StopReason) {
	d.state = Stopped
	d.reason = reason
	d.observer.ObserveStop(reason, d.walker.Index())
	Logger().Info("run stopped",
		"reason", reason, "index", d.walker.Index(), "ticks", d.ticks)
}

// State returns the lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Stopped reports whether the run is over.
func (d *Driver) Stopped() bool {
	return d.state == Stopped
}

// Reason returns why the driver stopped, or ReasonNone while running.
func (d *Driver) Reason() StopReason {
	return d.reason
}

// Index returns the next index to be drawn.
func (d *Driver) Index() uint64 {
	return d.walker.Index()
}

// Ceiling returns the effective ceiling after clamping to the path capacity.
func (d *Driver) Ceiling() uint64 {
	return d.ceiling
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Surface returns the raster the driver draws into.
func (d *Driver) Surface() Surface {
	return d.surface
}

// Size returns the raster size.
func (d *Driver) Size() image.Point {
	return d.size
}

// Config returns the configuration the driver was built from.
func (d *Driver) Config() Config {
	return d.cfg
}

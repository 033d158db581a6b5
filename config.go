package numspiral

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/numspiral/classify"
	"github.com/gogpu/numspiral/walk"
)

// ErrInvalidConfig is wrapped by every error Config.Validate reports.
var ErrInvalidConfig = errors.New("numspiral: invalid config")

// MaxRasterSize bounds each raster dimension.
const MaxRasterSize = 8192

// DefaultCeiling is the index at which a run stops by default (2^25). A driver
// clamps it to what its path can place inside the raster; with the default
// 1024x1024 arc that is under a million. Config.EffectiveCeiling reports the
// clamped value.
const DefaultCeiling uint64 = 1 << 25

// Config holds the tuning knobs of a run.
type Config struct {
	// Raster size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Initial window size and title for windowed hosts.
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	Title        string `yaml:"title"`

	// Scale multiplies the host viewport before fitting, for HiDPI displays.
	Scale float64 `yaml:"scale"`

	Path       walk.Policy     `yaml:"path"`
	Classifier classify.Policy `yaml:"classifier"`
	Palette    PaletteName     `yaml:"palette"`

	// Step is the arc length between consecutive points of the arc spiral.
	Step float64 `yaml:"step"`

	// Batch is the number of indices drawn per tick.
	Batch int `yaml:"batch"`

	Start   uint64 `yaml:"start"`
	Stride  uint64 `yaml:"stride"`
	Ceiling uint64 `yaml:"ceiling"`

	CacheCapacity int           `yaml:"cache_capacity"`
	CollatzMode   classify.Mode `yaml:"collatz_mode"`
	CollatzLimit  int           `yaml:"collatz_limit"`

	// CollatzMemo is the number of Collatz step counts remembered; 0 turns
	// the memo off.
	CollatzMemo int `yaml:"collatz_memo"`

	Background Color `yaml:"background"`

	// TicksPerSecond paces hosts that drive their own loop.
	TicksPerSecond int `yaml:"ticks_per_second"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Width:          1024,
		Height:         1024,
		WindowWidth:    1024,
		WindowHeight:   1024,
		Title:          "Collatz",
		Scale:          1,
		Path:           walk.PolicyArc,
		Classifier:     classify.PolicyFactors,
		Palette:        PaletteAuto,
		Step:           1,
		Batch:          1000,
		Start:          1,
		Stride:         1,
		Ceiling:        DefaultCeiling,
		CacheCapacity:  classify.DefaultCapacity,
		CollatzMode:    classify.ModeFull,
		CollatzLimit:   classify.DefaultLimit,
		CollatzMemo:    classify.DefaultMemo,
		Background:     Black,
		TicksPerSecond: 60,
	}
}

// RasterSize returns the raster dimensions.
func (c Config) RasterSize() image.Point {
	return image.Pt(c.Width, c.Height)
}

// WindowSize returns the initial window dimensions.
func (c Config) WindowSize() image.Point {
	return image.Pt(c.WindowWidth, c.WindowHeight)
}

// EffectiveCeiling returns the ceiling a driver built from c alone would use:
// Ceiling clamped to the indices the configured path can place inside the
// raster.
func (c Config) EffectiveCeiling() (uint64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	p, err := walk.New(c.Path, walk.Options{Size: c.RasterSize(), Step: c.Step})
	if err != nil {
		return 0, err
	}
	return min(c.Ceiling, reachable(c.Start, p.Capacity(), c.Stride)), nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Width < 1 || c.Width > MaxRasterSize || c.Height < 1 || c.Height > MaxRasterSize {
		add("raster %dx%d outside 1..%d", c.Width, c.Height, MaxRasterSize)
	}
	if c.WindowWidth < 1 || c.WindowHeight < 1 {
		add("window %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		add("scale %v must be positive", c.Scale)
	}
	if !slices.Contains(walk.Policies(), c.Path) {
		add("unknown path %q", c.Path)
	}
	if !slices.Contains(classify.Policies(), c.Classifier) {
		add("unknown classifier %q", c.Classifier)
	}
	if c.Palette != PaletteAuto && !slices.Contains(Palettes(), c.Palette) {
		add("unknown palette %q", c.Palette)
	}
	if !(c.Step > 0) || math.IsInf(c.Step, 0) {
		add("step %v must be positive", c.Step)
	}
	if c.Batch < 1 {
		add("batch %d must be positive", c.Batch)
	}
	if c.Stride != 1 && c.Stride != 2 {
		add("stride %d must be 1 or 2", c.Stride)
	}
	if c.Start >= c.Ceiling {
		add("start %d must be below ceiling %d", c.Start, c.Ceiling)
	}
	if c.Batch > 0 && c.Stride > 0 && c.Ceiling > math.MaxUint64-uint64(c.Batch)*c.Stride {
		add("ceiling %d leaves no room for a batch", c.Ceiling)
	}
	if c.CacheCapacity < 1 {
		add("cache capacity %d must be positive", c.CacheCapacity)
	}
	if c.CollatzMode != "" && !slices.Contains(classify.Modes(), c.CollatzMode) {
		add("unknown collatz mode %q", c.CollatzMode)
	}
	if c.CollatzLimit < 1 {
		add("collatz limit %d must be positive", c.CollatzLimit)
	}
	if c.CollatzMemo < 0 {
		add("collatz memo %d must not be negative", c.CollatzMemo)
	}
	if c.TicksPerSecond < 1 {
		add("ticks per second %d must be positive", c.TicksPerSecond)
	}

	return errors.Join(errs...)
}

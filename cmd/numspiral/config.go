package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/numspiral"
)

// loadConfig returns the defaults overlaid with the YAML file at path.
// An empty path yields the defaults. Unknown keys are rejected.
func loadConfig(path string) (numspiral.Config, error) {
	cfg := numspiral.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decodeConfig(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *numspiral.Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeConfig prints cfg as YAML.
func writeConfig(w io.Writer, cfg numspiral.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// configFlags binds command-line flags for every Config field. Values land in
// a scratch Config; apply copies only the flags the user set, so a flag
// overrides the file and the file overrides the defaults.
type configFlags struct {
	values numspiral.Config
	copy   map[string]func(dst *numspiral.Config)
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	f.values = numspiral.DefaultConfig()
	v := &f.values
	f.copy = map[string]func(dst *numspiral.Config){}

	bind := func(name string, set func(dst *numspiral.Config)) {
		f.copy[name] = set
	}

	fs.IntVar(&v.Width, "width", v.Width, "raster width in pixels")
	bind("width", func(dst *numspiral.Config) { dst.Width = v.Width })
	fs.IntVar(&v.Height, "height", v.Height, "raster height in pixels")
	bind("height", func(dst *numspiral.Config) { dst.Height = v.Height })
	fs.IntVar(&v.WindowWidth, "window-width", v.WindowWidth, "initial window width")
	bind("window-width", func(dst *numspiral.Config) { dst.WindowWidth = v.WindowWidth })
	fs.IntVar(&v.WindowHeight, "window-height", v.WindowHeight, "initial window height")
	bind("window-height", func(dst *numspiral.Config) { dst.WindowHeight = v.WindowHeight })
	fs.StringVar(&v.Title, "title", v.Title, "window title")
	bind("title", func(dst *numspiral.Config) { dst.Title = v.Title })
	fs.Float64Var(&v.Scale, "scale", v.Scale, "viewport scale factor for HiDPI displays")
	bind("scale", func(dst *numspiral.Config) { dst.Scale = v.Scale })

	fs.StringVar((*string)(&v.Path), "path", string(v.Path), "path policy (arc, square, ring)")
	bind("path", func(dst *numspiral.Config) { dst.Path = v.Path })
	fs.StringVar((*string)(&v.Classifier), "classifier", string(v.Classifier), "classifier policy (factors, collatz, squares)")
	bind("classifier", func(dst *numspiral.Config) { dst.Classifier = v.Classifier })
	fs.StringVar((*string)(&v.Palette), "palette", string(v.Palette), "palette (primes, factors, steps, squares); empty picks one for the classifier")
	bind("palette", func(dst *numspiral.Config) { dst.Palette = v.Palette })

	fs.Float64Var(&v.Step, "step", v.Step, "arc length between points of the arc spiral")
	bind("step", func(dst *numspiral.Config) { dst.Step = v.Step })
	fs.IntVar(&v.Batch, "batch", v.Batch, "indices drawn per tick")
	bind("batch", func(dst *numspiral.Config) { dst.Batch = v.Batch })
	fs.Uint64Var(&v.Start, "start", v.Start, "first index")
	bind("start", func(dst *numspiral.Config) { dst.Start = v.Start })
	fs.Uint64Var(&v.Stride, "stride", v.Stride, "index increment per point")
	bind("stride", func(dst *numspiral.Config) { dst.Stride = v.Stride })
	fs.Uint64Var(&v.Ceiling, "ceiling", v.Ceiling, "index at which the run stops")
	bind("ceiling", func(dst *numspiral.Config) { dst.Ceiling = v.Ceiling })

	fs.IntVar(&v.CacheCapacity, "cache-capacity", v.CacheCapacity, "prime cache capacity of the factors classifier")
	bind("cache-capacity", func(dst *numspiral.Config) { dst.CacheCapacity = v.CacheCapacity })
	fs.StringVar((*string)(&v.CollatzMode), "collatz-mode", string(v.CollatzMode), "Collatz counting mode (full, shortcut, descent)")
	bind("collatz-mode", func(dst *numspiral.Config) { dst.CollatzMode = v.CollatzMode })
	fs.IntVar(&v.CollatzLimit, "collatz-limit", v.CollatzLimit, "maximum Collatz steps counted")
	bind("collatz-limit", func(dst *numspiral.Config) { dst.CollatzLimit = v.CollatzLimit })
	fs.IntVar(&v.CollatzMemo, "collatz-memo", v.CollatzMemo, "Collatz step counts remembered (0: off)")
	bind("collatz-memo", func(dst *numspiral.Config) { dst.CollatzMemo = v.CollatzMemo })

	fs.Var((*colorValue)(&v.Background), "background", "background colour (#RGB, #RGBA, #RRGGBB, #RRGGBBAA)")
	bind("background", func(dst *numspiral.Config) { dst.Background = v.Background })
	fs.IntVar(&v.TicksPerSecond, "tps", v.TicksPerSecond, "ticks per second for self-paced hosts")
	bind("tps", func(dst *numspiral.Config) { dst.TicksPerSecond = v.TicksPerSecond })
}

// apply copies the explicitly set flags of fs into dst.
func (f *configFlags) apply(fs *pflag.FlagSet, dst *numspiral.Config) {
	fs.Visit(func(fl *pflag.Flag) {
		if set, ok := f.copy[fl.Name]; ok {
			set(dst)
		}
	})
}

// colorValue adapts numspiral.Color to pflag.Value.
type colorValue numspiral.Color

func (c *colorValue) String() string { return numspiral.Color(*c).Hex() }

func (c *colorValue) Set(s string) error {
	parsed, err := numspiral.ParseHex(s)
	if err != nil {
		return err
	}
	*c = colorValue(parsed)
	return nil
}

func (c *colorValue) Type() string { return "color" }

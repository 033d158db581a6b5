package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/internal/blit"
	"github.com/gogpu/numspiral/internal/metrics"
)

// app holds the state shared by all subcommands.
type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsAddr string
	scaler      string

	flags configFlags

	// cfg is the effective configuration, resolved before any subcommand runs.
	cfg numspiral.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "numspiral",
		Short: "Draw numeric spiral patterns",
		Long: `numspiral walks the integers along a spiral, classifies each index
(prime factors, Collatz steps, perfect squares) and paints it.

Settings come from the defaults, then the YAML file given with --config,
then any flags set on the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pf.StringVar(&a.scaler, "scaler", string(blit.Nearest), "scaling kernel (nearest, approx, bilinear, catmullrom)")
	a.flags.register(pf)

	rootCmd.AddCommand(
		newRenderCmd(a),
		newTermCmd(a),
		newWindowCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup installs the logger and resolves the effective configuration.
func (a *app) setup(cmd *cobra.Command) error {
	logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	numspiral.SetLogger(logger)

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.flags.apply(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// newLogger builds a slog logger writing to w.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", format)
	}
}

// observer returns a metrics observer and starts the metrics endpoint when
// --metrics-addr is set. The endpoint stops with ctx. Without an address it
// returns nil.
func (a *app) observer(ctx context.Context) numspiral.Observer {
	if a.metricsAddr == "" {
		return nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(reg)

	go func() {
		if err := metrics.Serve(ctx, a.metricsAddr, reg); err != nil {
			numspiral.Logger().Warn("metrics endpoint stopped", "addr", a.metricsAddr, "err", err)
		}
	}()
	numspiral.Logger().Info("serving metrics", "addr", a.metricsAddr, "path", "/metrics")
	return rec
}

// newDriver builds a driver for the effective configuration.
func (a *app) newDriver(ctx context.Context, opts ...numspiral.DriverOption) (*numspiral.Driver, error) {
	if obs := a.observer(ctx); obs != nil {
		opts = append(opts, numspiral.WithObserver(obs))
	}
	return numspiral.NewDriver(a.cfg, opts...)
}

// interval returns the tick interval for self-paced hosts.
func (a *app) interval() time.Duration {
	if a.cfg.TicksPerSecond <= 0 {
		return 0
	}
	return time.Second / time.Duration(a.cfg.TicksPerSecond)
}

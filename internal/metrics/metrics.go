// Package metrics exports driver statistics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/numspiral"
)

// Namespace for all metrics
const metricsNamespace = "numspiral"

// Subsystem for driver metrics
const driverSubsystem = "driver"

// Recorder implements numspiral.Observer on Prometheus collectors.
type Recorder struct {
	// TicksTotal counts completed ticks.
	TicksTotal prometheus.Counter

	// IndicesTotal counts classified indices.
	IndicesTotal prometheus.Counter

	// PixelsTotal counts batch points by outcome.
	// Labels: outcome (drawn, skipped, clipped)
	PixelsTotal *prometheus.CounterVec

	// NextIndex is the index the next batch starts at.
	NextIndex prometheus.Gauge

	// CacheSize is the classifier cache size (factor primes).
	CacheSize prometheus.Gauge

	// BatchDurationSeconds measures time spent drawing and presenting a batch.
	BatchDurationSeconds prometheus.Histogram

	// StopsTotal counts stopped runs.
	// Labels: reason (ceiling, shutdown)
	StopsTotal *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		TicksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "ticks_total",
			Help:      "Total completed ticks",
		}),
		IndicesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "indices_total",
			Help:      "Total classified indices",
		}),
		PixelsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "pixels_total",
			Help:      "Total batch points by outcome",
		}, []string{"outcome"}),
		NextIndex: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "next_index",
			Help:      "Index the next batch starts at",
		}),
		CacheSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "cache_entries",
			Help:      "Classifier cache entries",
		}),
		BatchDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "batch_duration_seconds",
			Help:      "Batch draw and present duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
		}),
		StopsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: driverSubsystem,
			Name:      "stops_total",
			Help:      "Total stopped runs by reason",
		}, []string{"reason"}),
	}
}

// ObserveTick implements numspiral.Observer.
func (r *Recorder) ObserveTick(s numspiral.TickStats) {
	r.TicksTotal.Inc()
	r.IndicesTotal.Add(float64(s.Drawn + s.Skipped + s.Clipped))
	r.PixelsTotal.WithLabelValues("drawn").Add(float64(s.Drawn))
	r.PixelsTotal.WithLabelValues("skipped").Add(float64(s.Skipped))
	r.PixelsTotal.WithLabelValues("clipped").Add(float64(s.Clipped))
	r.NextIndex.Set(float64(s.Next))
	r.CacheSize.Set(float64(s.Cached))
	r.BatchDurationSeconds.Observe(s.Busy.Seconds())
}

// ObserveStop implements numspiral.Observer.
func (r *Recorder) ObserveStop(reason numspiral.StopReason, index uint64) {
	r.StopsTotal.WithLabelValues(reason.String()).Inc()
	r.NextIndex.Set(float64(index))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

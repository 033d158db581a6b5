package metrics

import (
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/walk"
)

var _ numspiral.Observer = (*Recorder)(nil)

func newTestRecorder(t *testing.T) (*Recorder, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

func TestObserveTick(t *testing.T) {
	r, _ := newTestRecorder(t)

	r.ObserveTick(numspiral.TickStats{
		Tick: 1, First: 1, Next: 1001,
		Drawn: 168, Skipped: 830, Clipped: 2,
		Cached: 168, Busy: 3 * time.Millisecond,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.TicksTotal))
	assert.Equal(t, 1000.0, testutil.ToFloat64(r.IndicesTotal))
	assert.Equal(t, 168.0, testutil.ToFloat64(r.PixelsTotal.WithLabelValues("drawn")))
	assert.Equal(t, 830.0, testutil.ToFloat64(r.PixelsTotal.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.PixelsTotal.WithLabelValues("clipped")))
	assert.Equal(t, 1001.0, testutil.ToFloat64(r.NextIndex))
	assert.Equal(t, 168.0, testutil.ToFloat64(r.CacheSize))
	assert.Equal(t, 1, testutil.CollectAndCount(r.BatchDurationSeconds))
}

func TestRecorderWithDriver(t *testing.T) {
	r, _ := newTestRecorder(t)

	cfg := numspiral.DefaultConfig()
	cfg.Width, cfg.Height = 128, 128
	cfg.Path = walk.PolicySquare
	cfg.Ceiling = 2000
	d, err := numspiral.NewDriver(cfg, numspiral.WithObserver(r))
	require.NoError(t, err)
	for d.Tick(0, image.Pt(128, 128)) {
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(r.TicksTotal))
	assert.Equal(t, 2000.0, testutil.ToFloat64(r.IndicesTotal))
	assert.Equal(t, 303.0, testutil.ToFloat64(r.PixelsTotal.WithLabelValues("drawn")))
	assert.Equal(t, 303.0, testutil.ToFloat64(r.CacheSize))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StopsTotal.WithLabelValues("ceiling")))
	assert.Equal(t, 2001.0, testutil.ToFloat64(r.NextIndex))
}

func TestHandler(t *testing.T) {
	r, reg := newTestRecorder(t)
	r.ObserveStop(numspiral.ReasonShutdown, 42)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP numspiral_driver_stops_total Total stopped runs by reason
# TYPE numspiral_driver_stops_total counter
numspiral_driver_stops_total{reason="shutdown"} 1
`), "numspiral_driver_stops_total")
	require.NoError(t, err)
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

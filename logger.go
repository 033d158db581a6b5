package numspiral

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard is a slog.Handler that drops every record. Enabled reports false,
// so callers skip attribute formatting entirely.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(discard{}))
}

// SetLogger configures the logger for numspiral and its integrations.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: per-tick batch statistics
//   - [slog.LevelInfo]: driver start, ceiling clamping, run stop
//   - [slog.LevelWarn]: degraded operation (factor cache exhausted, frame
//     output failures in hosts)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	logger.Store(l)
}

// Logger returns the current logger. Integration packages share it so that
// one SetLogger call configures the whole run.
func Logger() *slog.Logger {
	return logger.Load()
}

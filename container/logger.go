package container

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards everything; Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by the container and its helper
// packages. By default nothing is logged. Pass nil to silence it again.
//
// Levels:
//   - [slog.LevelDebug]: cache hits and misses, font resolution
//   - [slog.LevelWarn]: degraded results (missing image, unknown weight,
//     unbalanced clip stack, font file that fails to load)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

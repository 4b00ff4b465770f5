package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Exported 3 shapes (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports project and storage events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLoad(_ context.Context, defaulted int, d time.Duration, err error) {
	h.logger.Debug("load", "defaulted", defaulted, "duration", d.Round(time.Microsecond), "err", err)
}

func (h logHooks) OnPaint(_ context.Context, mode string, x, y int, result string) {
	h.logger.Debug("paint", "mode", mode, "x", x, "y", y, "result", result)
}

func (h logHooks) OnExport(_ context.Context, kind string, size int, err error) {
	h.logger.Debug("export", "kind", kind, "bytes", size, "err", err)
}

func (h logHooks) OnImport(_ context.Context, size int, err error) {
	h.logger.Debug("import", "bytes", size, "err", err)
}

func (h logHooks) OnClear(_ context.Context, err error) {
	h.logger.Debug("clear", "err", err)
}

func (h logHooks) OnRead(_ context.Context, key string, hit bool) {
	h.logger.Debug("storage read", "key", key, "hit", hit)
}

func (h logHooks) OnWrite(_ context.Context, key string, size int) {
	h.logger.Debug("storage write", "key", key, "bytes", size)
}

func (h logHooks) OnDelete(_ context.Context, key string) {
	h.logger.Debug("storage delete", "key", key)
}

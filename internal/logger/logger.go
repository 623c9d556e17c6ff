// Package logger is the process-wide structured logging facade. It
// wraps log/slog with a colored text handler for terminals and a JSON
// handler for aggregation pipelines, switchable at runtime.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmsproject/dms/internal/telemetry"
)

// Config selects level, format and destination for the process logger.
type Config struct {
	Level  string // DEBUG, INFO, WARN or ERROR
	Format string // text or json
	Output string // stdout, stderr or a file path
}

var (
	mu       sync.RWMutex
	levelVar = new(slog.LevelVar)
	format   = "text"
	output   io.Writer = os.Stdout
	useColor bool
	slogger  *slog.Logger
)

func init() {
	if f, ok := output.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}
	rebuild()
}

// rebuild swaps the slog handler for the current settings. Callers
// must hold mu.
func rebuild() {
	opts := &slog.HandlerOptions{Level: levelVar}
	if format == "json" {
		slogger = slog.New(slog.NewJSONHandler(output, opts))
		return
	}
	slogger = slog.New(NewColorTextHandler(output, opts, useColor))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return 0, false
}

// Init applies cfg to the process logger. An empty Output selects
// stdout; anything other than "stdout" or "stderr" is treated as a
// file path and opened for append. Empty Level or Format keep the
// current setting.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		output = os.Stdout
		useColor = isTerminal(os.Stdout.Fd())
	case "stderr":
		output = os.Stderr
		useColor = isTerminal(os.Stderr.Fd())
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
		}
		output = f
		useColor = false
	}

	if lvl, ok := parseLevel(cfg.Level); ok {
		levelVar.Set(lvl)
	}
	if f := strings.ToLower(cfg.Format); f == "text" || f == "json" {
		format = f
	}

	rebuild()
	return nil
}

// InitWithWriter points the logger at an arbitrary writer. Test use
// only.
func InitWithWriter(w io.Writer, level, fmtName string, enableColor bool) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	useColor = enableColor
	if lvl, ok := parseLevel(level); ok {
		levelVar.Set(lvl)
	}
	if f := strings.ToLower(fmtName); f == "text" || f == "json" {
		format = f
	}
	rebuild()
}

// SetLevel changes the minimum level. Unknown names are ignored.
func SetLevel(level string) {
	lvl, ok := parseLevel(level)
	if !ok {
		return
	}
	levelVar.Set(lvl)
}

// SetFormat switches between "text" and "json" output. Unknown names
// are ignored.
func SetFormat(name string) {
	name = strings.ToLower(name)
	if name != "text" && name != "json" {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	format = name
	rebuild()
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug, Info, Warn and Error log with alternating key/value fields:
//
//	logger.Info("request queued", "request_id", id, "files", n)

func Debug(msg string, args ...any) { current().Debug(msg, args...) }

func Info(msg string, args ...any) { current().Info(msg, args...) }

func Warn(msg string, args ...any) { current().Warn(msg, args...) }

func Error(msg string, args ...any) { current().Error(msg, args...) }

// The Ctx variants additionally prepend the active trace id, so log
// lines correlate with exported spans when tracing is enabled.

func DebugCtx(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, withTrace(ctx, args)...)
}

func InfoCtx(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, withTrace(ctx, args)...)
}

func WarnCtx(ctx context.Context, msg string, args ...any) {
	current().WarnContext(ctx, msg, withTrace(ctx, args)...)
}

func ErrorCtx(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, withTrace(ctx, args)...)
}

func withTrace(ctx context.Context, args []any) []any {
	id := telemetry.TraceID(ctx)
	if id == "" {
		return args
	}
	return append([]any{KeyTraceID, id}, args...)
}

// With returns a child logger carrying pre-bound fields.
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// Duration converts the time elapsed since start to fractional
// milliseconds, for use with DurationMs.
func Duration(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

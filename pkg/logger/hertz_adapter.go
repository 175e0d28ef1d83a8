package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// HertzSlogAdapter routes Hertz framework logs through slog so the
// whole process shares one structured log stream. It implements
// hlog.FullLogger.
type HertzSlogAdapter struct {
	logger *slog.Logger
}

// NewHertzSlogAdapter wraps an slog logger for Hertz.
func NewHertzSlogAdapter(logger *slog.Logger) *HertzSlogAdapter {
	return &HertzSlogAdapter{logger: logger}
}

func (h *HertzSlogAdapter) log(level slog.Level, v ...interface{}) {
	h.logger.Log(context.Background(), level, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) logf(level slog.Level, format string, v ...interface{}) {
	h.logger.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) ctxLogf(ctx context.Context, level slog.Level, format string, v ...interface{}) {
	h.logger.Log(ctx, level, fmt.Sprintf(format, v...))
}

// Trace logs at debug level; slog has no trace level.
func (h *HertzSlogAdapter) Trace(v ...interface{}) { h.log(slog.LevelDebug, v...) }

// Debug logs at debug level.
func (h *HertzSlogAdapter) Debug(v ...interface{}) { h.log(slog.LevelDebug, v...) }

// Info logs at info level.
func (h *HertzSlogAdapter) Info(v ...interface{}) { h.log(slog.LevelInfo, v...) }

// Notice logs at info level.
func (h *HertzSlogAdapter) Notice(v ...interface{}) { h.log(slog.LevelInfo, v...) }

// Warn logs at warn level.
func (h *HertzSlogAdapter) Warn(v ...interface{}) { h.log(slog.LevelWarn, v...) }

// Error logs at error level.
func (h *HertzSlogAdapter) Error(v ...interface{}) { h.log(slog.LevelError, v...) }

// Fatal logs at error level; process exit is left to the caller.
func (h *HertzSlogAdapter) Fatal(v ...interface{}) { h.log(slog.LevelError, v...) }

// Tracef logs a formatted message at debug level.
func (h *HertzSlogAdapter) Tracef(format string, v ...interface{}) {
	h.logf(slog.LevelDebug, format, v...)
}

// Debugf logs a formatted message at debug level.
func (h *HertzSlogAdapter) Debugf(format string, v ...interface{}) {
	h.logf(slog.LevelDebug, format, v...)
}

// Infof logs a formatted message at info level.
func (h *HertzSlogAdapter) Infof(format string, v ...interface{}) {
	h.logf(slog.LevelInfo, format, v...)
}

// Noticef logs a formatted message at info level.
func (h *HertzSlogAdapter) Noticef(format string, v ...interface{}) {
	h.logf(slog.LevelInfo, format, v...)
}

// Warnf logs a formatted message at warn level.
func (h *HertzSlogAdapter) Warnf(format string, v ...interface{}) {
	h.logf(slog.LevelWarn, format, v...)
}

// Errorf logs a formatted message at error level.
func (h *HertzSlogAdapter) Errorf(format string, v ...interface{}) {
	h.logf(slog.LevelError, format, v...)
}

// Fatalf logs a formatted message at error level.
func (h *HertzSlogAdapter) Fatalf(format string, v ...interface{}) {
	h.logf(slog.LevelError, format, v...)
}

// CtxTracef logs a formatted message at debug level with context.
func (h *HertzSlogAdapter) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelDebug, format, v...)
}

// CtxDebugf logs a formatted message at debug level with context.
func (h *HertzSlogAdapter) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelDebug, format, v...)
}

// CtxInfof logs a formatted message at info level with context.
func (h *HertzSlogAdapter) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelInfo, format, v...)
}

// CtxNoticef logs a formatted message at info level with context.
func (h *HertzSlogAdapter) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelInfo, format, v...)
}

// CtxWarnf logs a formatted message at warn level with context.
func (h *HertzSlogAdapter) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelWarn, format, v...)
}

// CtxErrorf logs a formatted message at error level with context.
func (h *HertzSlogAdapter) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelError, format, v...)
}

// CtxFatalf logs a formatted message at error level with context.
func (h *HertzSlogAdapter) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	h.ctxLogf(ctx, slog.LevelError, format, v...)
}

// SetLevel is a no-op; the level is controlled by the slog handler.
func (h *HertzSlogAdapter) SetLevel(level hlog.Level) {}

// SetOutput is a no-op; output is controlled by the slog handler.
func (h *HertzSlogAdapter) SetOutput(w io.Writer) {}

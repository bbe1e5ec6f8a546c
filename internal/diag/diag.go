// Package diag provides the nil-safe diagnostic logger threaded through
// context construction and scaling. A nil *Logger discards everything, so
// callers that never supply a logger pay no logging cost.
package diag

import "go.uber.org/zap"

// Logger wraps a *zap.Logger with nil-safe methods so construction paths
// that didn't request verbosity can pass a nil *Logger around freely.
type Logger struct {
	z *zap.Logger
}

// New wraps z. A nil z produces a Logger that discards everything.
func New(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

// Noop returns a Logger that discards everything.
func Noop() *Logger {
	return &Logger{}
}

// Info logs construction and per-slice diagnostics. There is no separate
// PRINT_INFO switch: whether anything is written depends only on the
// wrapped *zap.Logger.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Info(msg, fields...)
}

// Warn logs a recoverable construction failure. The caller still gets the
// returned error; this is additive context, never a substitute.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Warn(msg, fields...)
}

// Error logs an internal dispatch failure (no converter matched a
// supposed fast path); the caller still gets partial output per spec.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Error(msg, fields...)
}

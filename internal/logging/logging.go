// Package logging adapts log/slog to the small Logger interfaces of the
// tag, programmer and link packages.
package logging

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
)

// Logger forwards key-value pairs to a slog.Logger.
type Logger struct {
	l *slog.Logger
}

// New wraps l; a nil l uses slog.Default.
func New(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{l: l}
}

// NewText returns a Logger writing text records to w at the given level.
func NewText(w io.Writer, debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return New(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// With returns a Logger that adds attrs to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l: l.l.With(args...)}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.l.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.l.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.l.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

// Hex renders bytes as upper-case hex.
func Hex(key string, value []byte) slog.Attr {
	return slog.String(key, strings.ToUpper(hex.EncodeToString(value)))
}

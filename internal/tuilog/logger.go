// Package tuilog provides file-based logging for palettepro.
// The TUI owns the terminal while it runs, so log output goes to a file
// given with --log, and is discarded otherwise.
package tuilog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger wraps a slog.Logger that writes to a file once initialized.
// The zero value discards everything.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	logger  *slog.Logger
	enabled bool
}

var (
	// Log is the global logger instance.
	Log = &Logger{}
)

// Init initializes the global logger to write to the specified file.
// If path is empty, logging is disabled.
func Init(path string) error {
	return InitLevel(path, slog.LevelDebug)
}

// InitLevel is Init with an explicit minimum level.
func InitLevel(path string, level slog.Level) error {
	if path == "" {
		Log.mu.Lock()
		Log.enabled = false
		Log.mu.Unlock()
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	Log.attach(f, f, level)
	Log.Info("Logger initialized", "path", path)
	return nil
}

// New returns a logger writing text records to w. Used by tests and by
// commands that log to stderr.
func New(w io.Writer, level slog.Level) *Logger {
	l := &Logger{}
	l.attach(nil, w, level)
	return l
}

func (l *Logger) attach(f *os.File, w io.Writer, level slog.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	l.enabled = true
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Enabled returns whether logging is active.
func (l *Logger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Slog returns the underlying slog.Logger, or a discarding one when disabled.
func (l *Logger) Slog() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.logger
}

// Writer returns the log file for libraries that take an io.Writer.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.file == nil {
		return io.Discard
	}
	return l.file
}

func (l *Logger) log(level slog.Level, msg string, keyvals ...any) {
	l.mu.Lock()
	logger, enabled := l.logger, l.enabled
	l.mu.Unlock()
	if !enabled || logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, keyvals...)
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.log(slog.LevelDebug, msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.log(slog.LevelInfo, msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.log(slog.LevelWarn, msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.log(slog.LevelError, msg, keyvals...)
}

// Timed logs the duration of an operation. Usage:
//
//	defer tuilog.Log.Timed("generate gallery")()
func (l *Logger) Timed(operation string) func() {
	if !l.Enabled() {
		return func() {}
	}
	start := time.Now()
	l.Debug(operation, "status", "started")
	return func() {
		l.Debug(operation, "status", "completed", "duration", time.Since(start))
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

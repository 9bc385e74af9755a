// Package logging provides the shared structured logger for termhome.
//
// The terminal UI owns stdout, so log output goes to stderr by default or to
// a file configured at startup. Components derive their own logger with New,
// which tags every entry with a "component" attribute:
//
//	log := logging.New("kv")
//	log.Warn("write failed", "key", key, "error", err)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "TERMHOME_LOG_LEVEL"

var (
	mu         sync.Mutex
	baseLogger *slog.Logger
	logFile    *os.File
)

// Options configures the base logger.
type Options struct {
	Level string // debug, info, warn, error
	File  string // empty = stderr
}

// Setup replaces the base logger. Loggers returned by New before Setup keep
// their old handler, so call this first thing in main.
func Setup(opts Options) error {
	var w io.Writer = os.Stderr
	var f *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	level := opts.Level
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	baseLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	return nil
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	baseLogger = nil
	return err
}

// New returns a logger scoped to the given component name.
// An empty component returns the base logger.
func New(component string) *slog.Logger {
	mu.Lock()
	if baseLogger == nil {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: ParseLevel(os.Getenv(EnvLevel)),
		}))
	}
	base := baseLogger
	mu.Unlock()

	if component == "" {
		return base
	}
	return base.With("component", component)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel converts a level name to a slog.Level; unknown values mean info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

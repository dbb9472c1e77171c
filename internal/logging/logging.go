// Package logging sets up the application logger. The TUI owns the
// terminal, so logs go to a rotating file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level string // debug, info, warn, error
	Path  string // empty logs to stderr
}

// New builds a logger from cfg and returns it with the closer for the log
// file. Falls back to stderr when the log directory cannot be created.
func New(cfg Config) (*log.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err == nil {
			lj := &lumberjack.Logger{
				Filename:   cfg.Path,
				MaxSize:    5, // MB
				MaxBackups: 3,
				MaxAge:     28, // days
			}
			w, closer = lj, lj
		}
	}
	return NewWithWriter(cfg, w), closer
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           parseLevel(cfg.Level),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "logos",
	})
}

// Component returns a child logger tagged with the component name.
func Component(l *log.Logger, name string) *log.Logger {
	return l.With("component", name)
}

// parseLevel falls back to info for empty or unknown levels.
func parseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

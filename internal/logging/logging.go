// Package logging builds the slog logger shared by every dotadr command.
//
// By default warnings and errors go to stderr as text. --debug lowers the
// level to debug; --logfile redirects output to a file as JSON lines so a
// failed run can be inspected afterwards.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLevel applies when neither --debug nor a configured level is set.
const DefaultLevel = slog.LevelWarn

// Options controls logger construction.
type Options struct {
	// Debug forces the debug level regardless of Level.
	Debug bool
	// Level is a level name from user settings ("debug", "info", "warn", "error").
	Level string
	// File, when set, receives JSON log lines instead of Stderr.
	File string
	// Stderr is the text sink used without File. Defaults to os.Stderr.
	Stderr io.Writer
}

// New returns a logger and a function that releases any opened log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if strings.TrimSpace(opts.File) != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("logging: ensure log dir: %w", err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		return slog.New(slog.NewJSONHandler(f, handlerOpts)), f.Close, nil
	}

	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), func() error { return nil }, nil
}

// ParseLevel maps a level name to a slog level. Empty yields DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Discard returns a logger that drops everything. Packages fall back to it
// when constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

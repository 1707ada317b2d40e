// Package logger builds the structured logger used by henhouse programs:
// JSON records in a size-rotated file plus an optional console mirror.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Dir holds the log files. Created if missing.
	Dir string
	// Name is the file name without extension.
	Name string
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// MaxSizeMB, MaxBackups and MaxAgeDays bound rotation. Zero values use
	// 10 MB, 10 files, 7 days.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Console, if set, receives a one-line form of every record.
	Console io.Writer
}

// New opens a rotating log file and returns a logger writing to it. Close
// the returned io.Closer on shutdown.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Dir == "" {
		opts.Dir = "log"
	}
	if opts.Name == "" {
		opts.Name = "henhouse"
	}
	if err := os.MkdirAll(opts.Dir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, opts.Name+".log"),
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 10),
		MaxAge:     orDefault(opts.MaxAgeDays, 7),
		LocalTime:  true,
	}
	h := NewTeeHandler(file, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					src.Function = ""
					src.File = ShortFileName(src.File)
				}
			}
			return a
		},
	}, opts.Console)
	return slog.New(h), file, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

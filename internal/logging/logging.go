// Package logging builds the process-wide slog.Logger: JSON lines on stdout,
// optionally mirrored to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string

	// File, when set, receives a copy of every log line and is rotated by
	// size. Empty means stdout only.
	File string

	// Rotation limits for File. Zero values use the defaults below.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stdout replaces os.Stdout; used in tests.
	Stdout io.Writer
}

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 5
	defaultMaxAgeDays = 28
)

// New returns a JSON logger and a close function that flushes and closes the
// log file, if any.
func New(opts Options) (*slog.Logger, func() error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	w := stdout
	closeFn := func() error { return nil }
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(opts.MaxAgeDays, defaultMaxAgeDays),
			Compress:   true,
		}
		w = io.MultiWriter(stdout, file)
		closeFn = file.Close
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

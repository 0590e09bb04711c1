// Package logging configures slog output, optionally into a rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string // debug, info, warn, error
	FilePath   string // empty logs to Writer
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Writer receives logs when FilePath is empty. Defaults to os.Stderr.
	Writer io.Writer
}

// Setup builds the logger described by cfg and installs it as the slog
// default. The returned cleanup closes the log file, if any. An unknown level
// is reported as an error while the logger still falls back to info.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	var level slog.Level
	levelErr := level.UnmarshalText([]byte(cfg.Level))
	if levelErr != nil {
		level = slog.LevelInfo
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	cleanup := func() error { return nil }

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		w = lj
		cleanup = lj.Close
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, cleanup, levelErr
}

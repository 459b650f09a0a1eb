// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package logging builds the process-wide slog logger: text or JSON on
// stdout, optionally mirrored to a rotating log file.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"kachel/internal/config"
)

// ParseLevel converts a level string to slog.Level. Unrecognized strings
// give slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// nopCloser is returned when there is no log file to close.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger writing to stdout and, when cfg.File is set, to a
// rotating file. The returned io.Closer must be closed to flush the file.
func New(cfg config.LogConfig, stdout io.Writer) (*slog.Logger, io.Closer) {
	w := stdout
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w = io.MultiWriter(stdout, lj)
		closer = lj
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closer
}

// Setup installs the logger built by New as the slog default.
func Setup(cfg config.LogConfig, stdout io.Writer) io.Closer {
	logger, closer := New(cfg, stdout)
	slog.SetDefault(logger)
	return closer
}

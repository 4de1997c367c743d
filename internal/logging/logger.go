// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the zap loggers used by the lambdasecret command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatJSON writes one JSON object per entry, which is what CloudWatch expects.
	FormatJSON = "json"

	// FormatConsole writes human-readable entries.
	FormatConsole = "console"
)

// ErrInvalidConfig is wrapped by errors for an unrecognized level or format.
var ErrInvalidConfig = errors.New("invalid logging configuration")

// Config describes a logger.
type Config struct {
	// Level is the minimum level to log, e.g. "debug" or "warn".  Defaults to "info".
	Level string

	// Format is either FormatJSON or FormatConsole.  Defaults to FormatJSON.
	Format string
}

// New builds a logger that writes to w.  If w is nil, os.Stderr is used.
func New(cfg Config, w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if len(cfg.Level) > 0 {
		var err error
		if level, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "", FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)

	case FormatConsole:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)

	default:
		return nil, fmt.Errorf("%w: unrecognized format %q", ErrInvalidConfig, cfg.Format)
	}

	if w == nil {
		w = os.Stderr
	}

	return zap.New(
		zapcore.NewCore(encoder, zapcore.AddSync(w), level),
	), nil
}

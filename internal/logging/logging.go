// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging builds the zap loggers used by the dispatcher and
// defines the fields attached to every request log entry.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogama/qwikhttp/request"
)

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// DefaultConfig returns a JSON logger configuration writing to stderr.
// The level is debug because per-request logging levels do the gating.
func DefaultConfig() Config {
	return Config{
		Level:       "debug",
		OutputPaths: []string{"stderr"},
	}
}

// New creates a new logger with the provided configuration.
func New(cfg Config) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	paths := cfg.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encodingFormat(cfg.Development),
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       paths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}

	return zapCfg.Build()
}

// Level maps a request logging level onto the zap level its entries
// are written at. LogNone maps to a level above every other.
func Level(l request.LoggingLevel) zapcore.Level {
	switch l {
	case request.LogErrors:
		return zapcore.ErrorLevel
	case request.LogRequests:
		return zapcore.InfoLevel
	case request.LogDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.FatalLevel + 1
	}
}

// RequestFields returns the fields identifying b in log entries.
func RequestFields(b *request.Builder) []zap.Field {
	method := string(b.Method())
	if method == "" {
		method = "GET"
	}
	fields := []zap.Field{
		zap.Stringer("id", b.ID),
		zap.String("method", method),
		zap.String("url", b.URL()),
	}
	if b.ResponseStatusCode != 0 {
		fields = append(fields, zap.Int("status", b.ResponseStatusCode))
	}
	return fields
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.DebugLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

func encodingFormat(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			CallerKey:      "C",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "M",
			StacktraceKey:  "S",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

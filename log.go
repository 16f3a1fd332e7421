// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"go.uber.org/zap"

	"github.com/gogama/qwikhttp/internal/logging"
	"github.com/gogama/qwikhttp/request"
)

// requestLog writes the log entries for one Builder, gated by its
// logging level.
type requestLog struct {
	logger *zap.Logger
	b      *request.Builder
}

func newRequestLog(c *Config, b *request.Builder) requestLog {
	return requestLog{logger: c.logger(), b: b}
}

// write logs msg at the zap level matching x, if b's logging level
// enables x.
func (l requestLog) write(x request.LoggingLevel, msg string, fields []zap.Field) {
	if !l.b.LoggingLevel().Enabled(x) {
		return
	}
	l.logger.Log(logging.Level(x), msg, append(logging.RequestFields(l.b), fields...)...)
}

// failure logs a terminal failure.
func (l requestLog) failure(msg string, err error, fields ...zap.Field) {
	l.write(request.LogErrors, msg, append(fields, zap.Error(err)))
}

// event logs a dispatch or interception event.
func (l requestLog) event(msg string, fields ...zap.Field) {
	l.write(request.LogRequests, msg, fields)
}

// trace logs a lifecycle stage.
func (l requestLog) trace(msg string, fields ...zap.Field) {
	l.write(request.LogDebug, msg, fields)
}

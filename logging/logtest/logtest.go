// SPDX-License-Identifier: MIT

// Package logtest provides a logr.Logger for tests that writes through t.Log.
package logtest

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/slse/logging"
)

// New routes log output to t.Log at TRACE verbosity.
func New(t zaptest.TestingT) logr.Logger {
	zl := zaptest.NewLogger(t, zaptest.Level(zapcore.Level(-logging.TRACE)))

	return zapr.NewLogger(zl)
}

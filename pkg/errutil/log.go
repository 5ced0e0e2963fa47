// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil bridges oops errors to logging and tests.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// Code returns the oops error code carried by err, or "" when err is not an
// oops error or has no code.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// LogError logs err with structured context. Extra attrs are appended as
// key/value pairs after the error attributes.
func LogError(logger *slog.Logger, msg string, err error, attrs ...any) {
	fields := []any{"error", err.Error()}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := Code(err); code != "" {
			fields = append(fields, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			fields = append(fields, "context", ctx)
		}
	}
	logger.Error(msg, append(fields, attrs...)...)
}

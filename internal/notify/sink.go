// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package notify delivers fire-and-forget notifications about what a
// transformation pass did. Sinks never influence transformation results.
package notify

import "log/slog"

// Sink receives transformation notifications. Implementations must be safe
// for concurrent use; files of one session may be transformed in parallel.
type Sink interface {
	// Substituted is called once per realized fire call-site replacement.
	Substituted(original, replacement string)
	// Rejected is called when a handler cannot be turned into a direct call.
	Rejected(eventID, handler, reason string)
}

// Nop discards all notifications.
type Nop struct{}

// Substituted does nothing.
func (Nop) Substituted(string, string) {}

// Rejected does nothing.
func (Nop) Rejected(string, string, string) {}

// Logger writes notifications to a slog.Logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a sink logging to logger, or to slog.Default when nil.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Substituted logs the replacement at debug level.
func (l *Logger) Substituted(original, replacement string) {
	l.logger.Debug("replacing event fire",
		"original", original,
		"replacement", replacement)
}

// Rejected logs the skipped handler at warn level.
func (l *Logger) Rejected(eventID, handler, reason string) {
	l.logger.Warn("cannot replace event fire handler",
		"event", eventID,
		"handler", handler,
		"reason", reason)
}

// Multi fans notifications out to several sinks in order.
type Multi []Sink

// Substituted forwards to every sink.
func (m Multi) Substituted(original, replacement string) {
	for _, s := range m {
		s.Substituted(original, replacement)
	}
}

// Rejected forwards to every sink.
func (m Multi) Rejected(eventID, handler, reason string) {
	for _, s := range m {
		s.Rejected(eventID, handler, reason)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package notifytest provides a recording notify.Sink for tests.
package notifytest

import "sync"

// Substitution is one recorded Substituted call.
type Substitution struct {
	Original    string
	Replacement string
}

// Rejection is one recorded Rejected call.
type Rejection struct {
	EventID string
	Handler string
	Reason  string
}

// Recorder records every notification it receives.
type Recorder struct {
	mu            sync.Mutex
	substitutions []Substitution
	rejections    []Rejection
}

// Substituted records the call.
func (r *Recorder) Substituted(original, replacement string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.substitutions = append(r.substitutions, Substitution{Original: original, Replacement: replacement})
}

// Rejected records the call.
func (r *Recorder) Rejected(eventID, handler, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, Rejection{EventID: eventID, Handler: handler, Reason: reason})
}

// Substitutions returns a copy of the recorded substitutions.
func (r *Recorder) Substitutions() []Substitution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Substitution(nil), r.substitutions...)
}

// Rejections returns a copy of the recorded rejections.
func (r *Recorder) Rejections() []Rejection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Rejection(nil), r.rejections...)
}

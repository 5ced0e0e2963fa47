// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package extract turns raw call-site matches into subscription and fire
// records and accumulates them into per-session tables.
package extract

// HandlerKind distinguishes the two supported callback shapes.
type HandlerKind int

// Handler kinds.
const (
	GlobalFunction HandlerKind = iota
	InstanceMethod
)

// String returns the kind's report name.
func (k HandlerKind) String() string {
	if k == InstanceMethod {
		return "instance_method"
	}
	return "global_function"
}

// HandlerDescriptor describes a subscription callback as written at the
// subscribe site.
type HandlerDescriptor struct {
	Kind   HandlerKind
	Target string // object expression, InstanceMethod only
	Method string
}

// SubscriptionRecord is one subscribe call site.
type SubscriptionRecord struct {
	EventID string
	Handler HandlerDescriptor
	Source  string
	Line    int
}

// FireRecord is one fire call site.
type FireRecord struct {
	EventID string
	// Arguments are unevaluated expression texts spliced verbatim into calls.
	Arguments []string
	// Params is the raw params expression after signal stripping.
	Params string
	// Signal is set when the call carried the trailing true flag.
	Signal bool
	// Dynamic is set when Params is not a literal array, so the arguments
	// cannot be spread at build time.
	Dynamic bool
	// Statement is set when the call stands alone as a statement. A fire
	// used inside an expression cannot be replaced by statements.
	Statement bool
	Source    string
	Line      int
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package resolve

import "strconv"

// DefaultModuleAccessor is the host function that returns a module instance
// by id.
const DefaultModuleAccessor = "m"

// TargetKind identifies how a resolved target is addressed.
type TargetKind int

// Target kinds.
const (
	TargetFunction TargetKind = iota
	TargetModule
	TargetExpression
)

// String returns the kind's report name.
func (k TargetKind) String() string {
	switch k {
	case TargetFunction:
		return "function"
	case TargetModule:
		return "module"
	case TargetExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// Target is a concrete callable a fire can be replaced with.
type Target struct {
	Kind       TargetKind
	Function   string // TargetFunction
	ModuleID   string // TargetModule
	Expression string // TargetExpression
	Method     string // TargetModule, TargetExpression
}

// Accessor renders the callable part of a call to t. accessor names the
// module lookup function; empty selects DefaultModuleAccessor.
func (t Target) Accessor(accessor string) string {
	switch t.Kind {
	case TargetModule:
		if accessor == "" {
			accessor = DefaultModuleAccessor
		}
		return accessor + "(" + strconv.Quote(t.ModuleID) + ")->" + t.Method
	case TargetExpression:
		return t.Expression + "->" + t.Method
	default:
		return t.Function
	}
}

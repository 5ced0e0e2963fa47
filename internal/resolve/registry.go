// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package resolve maps subscription handler descriptors to concrete call
// targets using the host's listener-binding registry.
package resolve

// Owner is the object a runtime listener is bound to. Implementations answer
// capability queries instead of exposing their concrete type.
type Owner interface {
	// IsNamedModule reports whether the owner is a module with a stable id.
	IsNamedModule() bool
	// IsCompressable reports whether the owner may be addressed statically.
	IsCompressable() bool
	// ModuleID returns the module identifier. Only meaningful when
	// IsNamedModule is true.
	ModuleID() string
}

// Binding is one listener registered for an event at runtime.
type Binding struct {
	Owner  Owner
	Method string
}

// Registry is the read-only listener-binding registry of the host.
type Registry interface {
	// Bindings returns the listeners for eventID in registration order.
	Bindings(eventID string) []Binding
}

// EmptyRegistry is a registry without any bindings.
type EmptyRegistry struct{}

// Bindings always returns nil.
func (EmptyRegistry) Bindings(string) []Binding { return nil }

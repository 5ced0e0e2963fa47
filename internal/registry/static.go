// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

import (
	"os"

	"github.com/samber/oops"

	"github.com/holomush/evcompress/internal/resolve"
)

// ModuleOwner is a named host module.
type ModuleOwner struct {
	ID           string
	Compressable bool
}

// IsNamedModule reports whether the module has an id.
func (o ModuleOwner) IsNamedModule() bool { return o.ID != "" }

// IsCompressable reports whether the module may be called statically.
func (o ModuleOwner) IsCompressable() bool { return o.Compressable }

// ModuleID returns the module id.
func (o ModuleOwner) ModuleID() string { return o.ID }

// ClassOwner is a plain object of a host class. It never qualifies for
// module-addressed calls.
type ClassOwner struct {
	Class string
}

// IsNamedModule always returns false.
func (ClassOwner) IsNamedModule() bool { return false }

// IsCompressable always returns false.
func (ClassOwner) IsCompressable() bool { return false }

// ModuleID returns the empty string.
func (ClassOwner) ModuleID() string { return "" }

// Static is an in-memory listener registry. It is not safe for concurrent
// mutation; populate it before transforming.
type Static struct {
	bindings map[string][]resolve.Binding
}

// New creates an empty registry.
func New() *Static {
	return &Static{bindings: make(map[string][]resolve.Binding)}
}

// FromManifest builds a registry from a validated manifest.
func FromManifest(m *Manifest) *Static {
	s := New()
	for _, l := range m.Listeners {
		for _, h := range l.Handlers {
			var owner resolve.Owner = ClassOwner{Class: h.Class}
			if h.Module != "" {
				owner = ModuleOwner{ID: h.Module, Compressable: h.Compressable}
			}
			s.Add(l.Event, owner, h.Method)
		}
	}
	return s
}

// Load reads, schema-checks and parses the manifest at path.
func Load(path string) (*Static, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, oops.Code(CodeReadFailed).With("path", path).Wrapf(err, "reading registry manifest")
	}
	if err := ValidateSchema(data); err != nil {
		return nil, oops.Code(CodeInvalid).With("path", path).Wrap(err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return FromManifest(m), nil
}

// Add registers a listener for eventID.
func (s *Static) Add(eventID string, owner resolve.Owner, method string) {
	s.bindings[eventID] = append(s.bindings[eventID], resolve.Binding{Owner: owner, Method: method})
}

// Bindings returns the listeners for eventID in registration order.
func (s *Static) Bindings(eventID string) []resolve.Binding {
	return s.bindings[eventID]
}

// Len returns the number of event ids with listeners.
func (s *Static) Len() int { return len(s.bindings) }

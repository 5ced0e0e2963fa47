// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package registry loads the host's listener bindings from a manifest file
// and serves them as a resolve.Registry.
package registry

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the semver constraint manifest versions must satisfy.
const SupportedVersions = "^1.0.0"

var versionConstraint = mustConstraint(SupportedVersions)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(fmt.Sprintf("invalid version constraint %q: %v", c, err))
	}
	return constraint
}

// Manifest represents a listeners.yaml file.
type Manifest struct {
	Version   string     `yaml:"version" json:"version"`
	Listeners []Listener `yaml:"listeners" json:"listeners"`
}

// Listener lists the handlers bound to one event id.
type Listener struct {
	Event    string    `yaml:"event" json:"event" jsonschema:"minLength=1"`
	Handlers []Handler `yaml:"handlers" json:"handlers"`
}

// Handler is one runtime binding. Exactly one of Module and Class is set.
type Handler struct {
	Module       string `yaml:"module,omitempty" json:"module,omitempty"`
	Class        string `yaml:"class,omitempty" json:"class,omitempty"`
	Method       string `yaml:"method" json:"method" jsonschema:"minLength=1"`
	Compressable bool   `yaml:"compressable,omitempty" json:"compressable,omitempty"`
}

// ParseManifest parses and validates a listeners.yaml file.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, oops.Code(CodeInvalid).Errorf("manifest data is empty")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "invalid YAML")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	if m.Version == "" {
		return oops.Code(CodeInvalid).Errorf("version is required")
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return oops.Code(CodeVersion).With("version", m.Version).Wrapf(err, "version %q is not semver", m.Version)
	}
	if !versionConstraint.Check(v) {
		return oops.Code(CodeVersion).
			With("version", m.Version).
			Errorf("version %s does not satisfy %s", m.Version, SupportedVersions)
	}

	for i, l := range m.Listeners {
		if l.Event == "" {
			return oops.Code(CodeInvalid).With("listener", i).Errorf("listeners[%d].event is required", i)
		}
		for j, h := range l.Handlers {
			if err := h.validate(); err != nil {
				return oops.Code(CodeInvalid).
					With("event", l.Event).
					With("handler", j).
					Wrapf(err, "listeners[%d].handlers[%d]", i, j)
			}
		}
	}
	return nil
}

func (h Handler) validate() error {
	if h.Method == "" {
		return fmt.Errorf("method is required")
	}
	if (h.Module == "") == (h.Class == "") {
		return fmt.Errorf("exactly one of module or class is required")
	}
	return nil
}

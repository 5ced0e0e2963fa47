// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package synth builds the direct-call source text that replaces a fire.
package synth

import (
	"strings"

	"github.com/holomush/evcompress/internal/extract"
	"github.com/holomush/evcompress/internal/resolve"
)

// Synthesizer renders call statements for resolved targets.
type Synthesizer struct {
	moduleAccessor string
}

// New creates a synthesizer addressing modules through moduleAccessor
// ("" for resolve.DefaultModuleAccessor).
func New(moduleAccessor string) *Synthesizer {
	return &Synthesizer{moduleAccessor: moduleAccessor}
}

// Statement renders one call of target with args.
func (s *Synthesizer) Statement(target resolve.Target, args []string) string {
	return target.Accessor(s.moduleAccessor) + "(" + strings.Join(args, ", ") + ");"
}

// Synthesize renders one statement per target, in order, separated by
// newlines. No targets yields the empty string.
func (s *Synthesizer) Synthesize(fire extract.FireRecord, targets []resolve.Target) string {
	stmts := make([]string, 0, len(targets))
	for _, t := range targets {
		stmts = append(stmts, s.Statement(t, fire.Arguments))
	}
	return strings.Join(stmts, "\n")
}

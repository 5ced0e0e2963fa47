// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package rewrite substitutes fire call sites with their synthesized calls.
//
// Each substitution names the byte offset of the call site it replaces, so
// look-alike text in comments or strings is never touched. Two live sites
// with byte-identical text still share one fire record, and only the site the
// caller located receives the replacement.
package rewrite

import (
	"sort"
	"strings"

	"github.com/holomush/evcompress/internal/notify"
)

// Substitution replaces Original, found at byte Offset of the source, with
// Replacement.
type Substitution struct {
	Original    string
	Replacement string
	Offset      int
}

// Apply performs subs on src in offset order. A substitution whose Original
// is empty, is not found at its Offset, or overlaps an earlier one is skipped
// silently. Each realized replacement is reported to sink.
func Apply(src string, subs []Substitution, sink notify.Sink) (string, int) {
	if sink == nil {
		sink = notify.Nop{}
	}
	ordered := append([]Substitution(nil), subs...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Offset < ordered[j].Offset })

	var b strings.Builder
	b.Grow(len(src))
	cursor, applied := 0, 0
	for _, s := range ordered {
		if s.Original == "" || s.Offset < cursor || !strings.HasPrefix(src[min(s.Offset, len(src)):], s.Original) {
			continue
		}
		b.WriteString(src[cursor:s.Offset])
		b.WriteString(s.Replacement)
		cursor = s.Offset + len(s.Original)
		sink.Substituted(s.Original, s.Replacement)
		applied++
	}
	b.WriteString(src[cursor:])
	return b.String(), applied
}

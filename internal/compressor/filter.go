// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package compressor

import (
	"github.com/gobwas/glob"
)

// Filter selects which event ids are compressed.
//
// Pattern matching uses gobwas/glob with '.' as the segment separator:
//   - '*' matches a single segment ("core.*" matches "core.render")
//   - '**' matches any number of segments ("core.**" matches "core.a.b")
//
// An empty include list selects every id; exclude always wins.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude patterns.
func NewFilter(include, exclude []string) (*Filter, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, ErrInvalidFilter(p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Selected reports whether fires of id should be compressed.
func (f *Filter) Selected(id string) bool {
	if f == nil {
		return true
	}
	for _, g := range f.exclude {
		if g.Match(id) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(id) {
			return true
		}
	}
	return false
}

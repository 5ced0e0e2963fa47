// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package compressor statically resolves event fires into direct calls.
//
// A Session owns the subscription and fire tables of one compilation. Source
// units are fed to Collect, then each unit is passed through Transform, which
// replaces every fire call site with calls to the handlers the listener
// registry binds to that event:
//
//	s, _ := compressor.NewSession(compressor.Options{})
//	s.Collect(src)
//	res := s.Transform(src, registry, notify.Nop{})
//	fmt.Print(res.Output)
//
// Nothing in a pass is fatal. Unmatched text yields no records and handlers
// that cannot be called directly are dropped, so a fire with no resolvable
// handler is removed from the output.
package compressor

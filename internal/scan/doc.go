// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package scan locates event subscribe and fire call sites in host source text.
//
// Matching is tolerant: call heads are found with regular expressions and the
// call's extent is found with a balanced bracket scan over a light token
// stream, so no grammar for the host language is needed. Text that does not
// form a complete call simply produces no match.
package scan

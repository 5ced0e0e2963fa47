// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package compressor

import "github.com/samber/oops"

// CodeInvalidFilter is the error code for malformed event filter patterns.
const CodeInvalidFilter = "FILTER_INVALID"

// ErrInvalidFilter creates an error for a pattern that does not compile.
func ErrInvalidFilter(pattern string, cause error) error {
	return oops.Code(CodeInvalidFilter).
		With("pattern", pattern).
		Wrapf(cause, "invalid event filter pattern %q", pattern)
}

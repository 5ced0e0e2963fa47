// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

// Error codes for registry loading failures.
const (
	CodeInvalid    = "REGISTRY_INVALID"
	CodeVersion    = "REGISTRY_VERSION"
	CodeReadFailed = "READ_FAILED"
)

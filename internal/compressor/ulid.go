// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package compressor

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// newSessionID generates a ULID identifying a session in logs.
func newSessionID() ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

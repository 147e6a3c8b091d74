package appwrite

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// UniqueID generates a new resource ID. IDs are lowercase ULIDs: 26 characters,
// alphanumeric, sortable by creation time, within the service's 36 character limit.
func UniqueID() string {
	entropyLock.Lock()
	defer entropyLock.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return strings.ToLower(id.String())
}

// IDs implements domain.IDGenerator with UniqueID
type IDs struct{}

// NewID returns UniqueID()
func (IDs) NewID() string {
	return UniqueID()
}

package convert

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator supplies the ids and timestamps stamped on generated documents.
type IDGenerator interface {
	NewID() string
	Timestamp() int64
}

// RandomIDs generates uuid v4 ids and wall-clock millisecond timestamps.
type RandomIDs struct{}

// NewID returns a random uuid.
func (RandomIDs) NewID() string {
	return uuid.NewString()
}

// Timestamp returns the current time in milliseconds since the epoch.
func (RandomIDs) Timestamp() int64 {
	return time.Now().UnixMilli()
}

// DeterministicIDs returns empty ids and zero timestamps so that output is
// reproducible byte for byte.
type DeterministicIDs struct{}

// NewID returns "".
func (DeterministicIDs) NewID() string {
	return ""
}

// Timestamp returns 0.
func (DeterministicIDs) Timestamp() int64 {
	return 0
}

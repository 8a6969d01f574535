// Package snapshot persists encoded frame snapshots. Stores are keyed by
// opaque snapshot IDs and hold the binary format produced by pkg/protocol.
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store errors.
var (
	ErrNotFound = errors.New("snapshot: not found")
	ErrTooLarge = errors.New("snapshot: snapshot exceeds size limit")
)

// MaxSnapshotSize caps stored snapshots (64MB). A snapshot larger than this
// is almost certainly corrupt or adversarial.
const MaxSnapshotSize = 64 << 20

// Info describes a stored snapshot.
type Info struct {
	ID      string
	Size    int64
	ModTime time.Time
}

// Store persists snapshots by ID.
type Store interface {
	// Put stores a snapshot under the given ID, overwriting any previous
	// snapshot with that ID.
	Put(ctx context.Context, id string, data []byte) error

	// Get retrieves a snapshot. Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) ([]byte, error)

	// List enumerates stored snapshots.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a snapshot. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

// NewID generates a fresh snapshot ID.
func NewID() string {
	return uuid.NewString()
}

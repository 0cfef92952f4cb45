// Package store persists diagram-data documents by name.
//
// Two backends are provided: an in-memory store for tests and one-shot CLI
// runs, and a MongoDB store for server deployments. Both store the document
// as an opaque blob; parsing and editing happen in pkg/diagram.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a named diagram does not exist.
var ErrNotFound = errors.New("diagram not found")

// Record is one stored diagram document.
type Record struct {
	// Name is the unique diagram name.
	Name string `bson:"_id" json:"name"`
	// Blob is the serialized diagram-data document.
	Blob []byte `bson:"blob" json:"blob"`
	// UpdatedAt is the time of the last Put.
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Store is the backend-agnostic diagram store.
type Store interface {
	// Get retrieves a diagram by name. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, name string) (*Record, error)
	// Put stores a diagram blob under a name, replacing any previous blob.
	Put(ctx context.Context, name string, blob []byte) error
	// Delete removes a diagram. Returns [ErrNotFound] when absent.
	Delete(ctx context.Context, name string) error
	// List returns all diagram names in lexical order.
	List(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}

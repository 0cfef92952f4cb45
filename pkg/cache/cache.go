// Package cache provides the caching layer for rendered diagram artifacts.
//
// Rendering a diagram through Graphviz is the expensive step of the
// pipeline, so the CLI and the server cache rendered output keyed by a hash
// of the serialized model plus the render options. Three backends are
// provided: file-based for CLI usage, Redis for server deployments, and a
// null cache for tests and one-shot runs.
package cache

import (
	"context"
	"time"
)

// Cache is the backend-agnostic cache interface.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A non-positive ttl stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// RenderKeyOpts are the render options that contribute to a cache key.
// Two renders with different options must never share an entry.
type RenderKeyOpts struct {
	Format   string // "svg", "png", "dot"
	Detailed bool
}

// Keyer generates cache keys for the artifact types the system caches.
type Keyer interface {
	// RenderKey generates a key for a rendered artifact, from the hash of
	// the serialized model and the render options.
	RenderKey(modelHash string, opts RenderKeyOpts) string
	// DiagramKey generates a key for a stored diagram blob.
	DiagramKey(name string) string
}

// DefaultKeyer generates hash-based keys with type prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(modelHash string, opts RenderKeyOpts) string {
	return hashKey("render", modelHash, opts.Format, opts.Detailed)
}

// DiagramKey generates a key for a stored diagram blob.
func (k *DefaultKeyer) DiagramKey(name string) string {
	return hashKey("diagram", name)
}

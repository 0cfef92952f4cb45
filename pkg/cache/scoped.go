package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The server uses this to keep cache namespaces of different diagram
// collections apart while sharing one backend.
//
// Example usage:
//
//	// Per-collection keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(modelHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(modelHash, opts)
}

// DiagramKey generates a prefixed key for a stored diagram blob.
func (k *ScopedKeyer) DiagramKey(name string) string {
	return k.prefix + k.inner.DiagramKey(name)
}

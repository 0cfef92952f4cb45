package diagram

import (
	"strings"

	"github.com/google/uuid"
)

// IDSource produces globally-unique point/connection identifiers.
// AddNode draws four fresh IDs per call; presentation cloning draws one per
// cloned point and mirrored connection.
type IDSource interface {
	NewID() string
}

// UUIDSource allocates identifiers in the braced uppercase UUID form the
// host format uses, e.g. "{04AF9B71-9E2A-4C7B-A3F1-0D9C5BB08B7D}".
// The space is effectively collision-free, so collisions are not handled.
type UUIDSource struct{}

// NewID returns a previously unused identifier.
func (UUIDSource) NewID() string {
	return "{" + strings.ToUpper(uuid.NewString()) + "}"
}

// IDFunc adapts a plain function to an [IDSource]. Tests use it to make
// identifier allocation deterministic.
type IDFunc func() string

// NewID calls f.
func (f IDFunc) NewID() string { return f() }

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash returns the SHA-256 of data as a 64-character hex string. Render
// keys derive from this hash of the serialized document, so byte-identical
// documents share their rendered artifacts and a changed document simply
// hashes to a fresh key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a key of the form "prefix:hash" from the hash of its
// parts. Parts are NUL-separated before hashing so adjacent values cannot
// run together and collide.
func hashKey(prefix string, parts ...any) string {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "%v\x00", p)
	}
	return prefix + ":" + Hash([]byte(b.String()))
}

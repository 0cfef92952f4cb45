package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered artifacts as files under a fan-out directory,
// one entry per key. Artifacts are binary blobs (SVG, PNG), so each entry
// holds the payload verbatim behind a fixed-size expiry header rather than
// wrapped in a serialization format.
type FileCache struct {
	dir string
}

// entryHeaderLen is the size of the expiry header: the deadline as
// big-endian unix nanoseconds, zero meaning the entry never expires.
const entryHeaderLen = 8

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory when needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves an artifact. Truncated or expired entries count as misses
// and are removed on the way out.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < entryHeaderLen {
		_ = os.Remove(path)
		return nil, false, nil
	}

	deadline := int64(binary.BigEndian.Uint64(raw[:entryHeaderLen]))
	if deadline != 0 && time.Now().UnixNano() > deadline {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[entryHeaderLen:], true, nil
}

// Set stores an artifact. A non-positive ttl stores it without expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var deadline int64
	if ttl > 0 {
		deadline = time.Now().Add(ttl).UnixNano()
	}

	entry := make([]byte, entryHeaderLen+len(data))
	binary.BigEndian.PutUint64(entry[:entryHeaderLen], uint64(deadline))
	copy(entry[entryHeaderLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, entry, 0o644)
}

// Delete removes an entry. Deleting an absent key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; the file cache holds no open handles between calls.
func (c *FileCache) Close() error { return nil }

// path maps a key to its entry file. Keys are hashed and fanned out over
// 256 subdirectories so a long-lived cache does not pile every artifact
// into one directory.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".bin")
}

var _ Cache = (*FileCache)(nil)

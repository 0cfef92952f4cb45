// Package pack is an in-memory host package: the part and relationship
// store a diagram lives in. It satisfies diagram.ImageRegistry.
//
// Image parts are content-addressed: registering the same bytes twice yields
// the same part. Relationships are the opposite: every request mints a fresh
// identifier, even for a target that already has one, because each diagram
// node needs its own reference to the image it shows.
package pack

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/tobim/smartgraph/pkg/diagram"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
)

// Relationship links a relationship ID to a part target.
type Relationship struct {
	ID     string
	Kind   string
	Target string
}

// Package is an in-memory part store. Safe for concurrent use.
type Package struct {
	mu        sync.Mutex
	parts     map[string][]byte // part name -> content
	byHash    map[string]string // content hash -> part name
	rels      []Relationship
	nextImage int
	nextRel   int
}

// New creates an empty package.
func New() *Package {
	return &Package{
		parts:  make(map[string][]byte),
		byHash: make(map[string]string),
	}
}

var _ diagram.ImageRegistry = (*Package)(nil)

// RegisterImage stores image data as a media part and returns a reference to
// it. The part name is derived from the image format; data in an
// unrecognized format is rejected. Identical bytes always map to the same
// part.
func (p *Package) RegisterImage(data []byte) (diagram.ImagePartRef, error) {
	ext, err := imageExt(data)
	if err != nil {
		return diagram.ImagePartRef{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if name, ok := p.byHash[key]; ok {
		return diagram.ImagePartRef{Target: name}, nil
	}

	p.nextImage++
	name := fmt.Sprintf("media/image%d.%s", p.nextImage, ext)
	p.parts[name] = bytes.Clone(data)
	p.byHash[key] = name
	return diagram.ImagePartRef{Target: name}, nil
}

// CreateRelationship mints a new relationship to the given target and
// returns its ID. Relationships are never deduplicated.
func (p *Package) CreateRelationship(kind, target string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextRel++
	rel := Relationship{ID: fmt.Sprintf("rId%d", p.nextRel), Kind: kind, Target: target}
	p.rels = append(p.rels, rel)
	return rel.ID, nil
}

// Part returns the content of a stored part.
func (p *Package) Part(name string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.parts[name]
	return data, ok
}

// Relationship looks up a relationship by ID.
func (p *Package) Relationship(id string) (Relationship, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rels {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// Relationships returns all relationships in creation order.
func (p *Package) Relationships() []Relationship {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Relationship, len(p.rels))
	copy(out, p.rels)
	return out
}

// Image format signatures, longest match wins.
var imageMagic = []struct {
	prefix []byte
	ext    string
}{
	{[]byte("\x89PNG\r\n\x1a\n"), "png"},
	{[]byte("\xff\xd8\xff"), "jpeg"},
	{[]byte("GIF87a"), "gif"},
	{[]byte("GIF89a"), "gif"},
	{[]byte("BM"), "bmp"},
	{[]byte("II*\x00"), "tiff"},
	{[]byte("MM\x00*"), "tiff"},
}

func imageExt(data []byte) (string, error) {
	for _, m := range imageMagic {
		if bytes.HasPrefix(data, m.prefix) {
			return m.ext, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat, "unrecognized image format")
}

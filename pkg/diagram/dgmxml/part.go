package dgmxml

import (
	"bytes"

	"github.com/tobim/smartgraph/pkg/diagram"
)

// defaultDecl is used for documents that arrive without an XML declaration.
const defaultDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// Part is a diagram-data sub-document bound to its original formatting
// conventions. Hosts are picky about these: changing the declaration quoting
// or the line-ending style of the part triggers repair prompts, so both are
// captured at load time and reapplied on every serialization.
type Part struct {
	model      *diagram.Model
	decl       []byte
	lineEnding []byte
}

// Load parses a diagram-data document and captures its declaration and
// line-ending convention.
func Load(blob []byte) (*Part, error) {
	m, err := Decode(blob)
	if err != nil {
		return nil, err
	}

	p := &Part{model: m, decl: []byte(defaultDecl), lineEnding: []byte("\n")}
	if end := bytes.Index(blob, []byte("?>")); end >= 0 && bytes.HasPrefix(blob, []byte("<?xml")) {
		p.decl = bytes.Clone(blob[:end+2])
	}
	if bytes.Contains(blob, []byte("\r\n")) {
		p.lineEnding = []byte("\r\n")
	}
	return p, nil
}

// NewPart wraps an in-memory model in a part with default formatting.
func NewPart(m *diagram.Model) *Part {
	return &Part{model: m, decl: []byte(defaultDecl), lineEnding: []byte("\n")}
}

// Model returns the decoded model.
func (p *Part) Model() *diagram.Model { return p.model }

// SmartArt wraps the part's model in an editing facade.
func (p *Part) SmartArt(opts ...diagram.Option) *diagram.SmartArt {
	return diagram.New(p.model, opts...)
}

// Blob serializes the current model state, prefixed with the declaration
// and separator the document arrived with.
func (p *Part) Blob() []byte {
	body := Encode(p.model)
	out := make([]byte, 0, len(p.decl)+len(p.lineEnding)+len(body))
	out = append(out, p.decl...)
	out = append(out, p.lineEnding...)
	out = append(out, body...)
	return out
}

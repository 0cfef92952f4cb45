package diagram

import (
	"encoding/xml"
	"slices"
	"strings"
)

// TextProps is an opaque bag of formatting properties attached to a run,
// a paragraph, or a paragraph end marker. The structural model never
// interprets the contents; it only preserves and copies them so that setting
// new text keeps the existing formatting.
type TextProps struct {
	Attrs []xml.Attr
	// Raw is nested property content (fills, fonts) carried verbatim.
	Raw string
}

// Clone returns a deep copy of the properties.
func (p *TextProps) Clone() *TextProps {
	if p == nil {
		return nil
	}
	return &TextProps{Attrs: slices.Clone(p.Attrs), Raw: p.Raw}
}

// Run is a span of uniformly formatted text.
type Run struct {
	Props *TextProps
	Text  string
}

// Paragraph is one paragraph of rich text: zero or more runs plus optional
// paragraph-level and end-of-paragraph properties.
type Paragraph struct {
	Props    *TextProps // paragraph properties (indentation, bullets)
	Runs     []Run
	EndProps *TextProps // formatting applied at the paragraph end marker
}

// Text is the rich-text body of a point.
type Text struct {
	// BodyProps and ListStyle are opaque body-level containers preserved
	// through load and serialization.
	BodyProps  *TextProps
	ListStyle  *TextProps
	Paragraphs []Paragraph
}

// NewTextSkeleton returns the empty text structure the host format requires
// on every created point: one paragraph whose end marker carries a default
// language attribute.
func NewTextSkeleton() *Text {
	return &Text{
		BodyProps: &TextProps{},
		ListStyle: &TextProps{},
		Paragraphs: []Paragraph{{
			EndProps: &TextProps{Attrs: []xml.Attr{{Name: xml.Name{Local: "lang"}, Value: "en-US"}}},
		}},
	}
}

// Plain returns the concatenated text of all runs.
func (t *Text) Plain() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, para := range t.Paragraphs {
		for _, r := range para.Runs {
			b.WriteString(r.Text)
		}
	}
	return b.String()
}

// SetPlain replaces the text of the first paragraph with value while
// preserving formatting: the new single run inherits the properties of the
// previous first run, or of the paragraph end marker when the paragraph had
// no runs. Paragraph-level properties are kept untouched.
func (t *Text) SetPlain(value string) {
	if len(t.Paragraphs) == 0 {
		t.Paragraphs = []Paragraph{{}}
	}
	para := &t.Paragraphs[0]

	props := para.EndProps.Clone()
	if len(para.Runs) > 0 {
		props = para.Runs[0].Props.Clone()
	}
	para.Runs = []Run{{Props: props, Text: value}}
}

// SetText replaces a point's text while preserving run and paragraph
// formatting, and clears the placeholder flag the host sets on untouched
// nodes. A point without a text structure is given the standard skeleton
// first, so SetText never fails on a structurally bare point.
func (p *Point) SetText(value string) {
	if p.Text == nil {
		p.Text = NewTextSkeleton()
	}
	p.Text.SetPlain(value)
	if p.Props != nil {
		p.Props.Placeholder = false
	}
}

// PlainText returns the point's text, or "" when it has none.
func (p *Point) PlainText() string { return p.Text.Plain() }

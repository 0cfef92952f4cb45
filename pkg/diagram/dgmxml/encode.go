package dgmxml

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/tobim/smartgraph/pkg/diagram"
)

const (
	nsDiagram = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
	nsDrawing = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRel     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Encode serializes a model to the XML form of a diagram-data sub-document.
// The output carries no XML declaration; [Part.Blob] prepends the one from
// the original document.
//
// Serialization is manual: opaque content (property-set children, shape
// content, text formatting) must pass through byte-for-byte, which the
// stdlib encoder cannot do.
func Encode(m *diagram.Model) []byte {
	var b bytes.Buffer

	b.WriteString(`<dgm:dataModel xmlns:dgm="` + nsDiagram +
		`" xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRel + `">`)

	b.WriteString("<dgm:ptLst>")
	for _, p := range m.Points() {
		writePoint(&b, p)
	}
	b.WriteString("</dgm:ptLst>")

	b.WriteString("<dgm:cxnLst>")
	for _, c := range m.Connections() {
		writeConnection(&b, c)
	}
	b.WriteString("</dgm:cxnLst>")

	b.WriteString("</dgm:dataModel>")
	return b.Bytes()
}

func writePoint(b *bytes.Buffer, p *diagram.Point) {
	b.WriteString(`<dgm:pt modelId="`)
	writeEscaped(b, p.ID)
	b.WriteByte('"')
	if tag := pointTypeTag(p.Kind); tag != "" {
		writeAttr(b, "type", tag)
	}
	if p.CxnID != "" {
		writeAttr(b, "cxnId", p.CxnID)
	}

	if p.Props == nil && p.Shape == nil && p.Text == nil {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')

	if p.Props != nil {
		writePropSet(b, p.Props)
	}
	if p.Shape != nil {
		writeShape(b, p.Shape)
	}
	if p.Text != nil {
		writeText(b, p.Text)
	}

	b.WriteString("</dgm:pt>")
}

// pointTypeTag returns the serialized type attribute for a kind. Editable
// nodes return "" and serialize without one.
func pointTypeTag(k diagram.PointKind) string {
	switch k {
	case diagram.KindDocument:
		return typeDoc
	case diagram.KindAssistant:
		return typeAsst
	case diagram.KindPresentation:
		return typePres
	case diagram.KindParentTransition:
		return typeParTrans
	case diagram.KindSiblingTransition:
		return typeSibTrans
	}
	return ""
}

func writePropSet(b *bytes.Buffer, ps *diagram.PropSet) {
	b.WriteString("<dgm:prSet")
	if ps.AssocID != "" {
		writeAttr(b, "presAssocID", ps.AssocID)
	}
	if ps.Name != "" {
		writeAttr(b, "presName", ps.Name)
	}
	if ps.StyleIndex != nil {
		writeAttr(b, "presStyleIdx", strconv.Itoa(*ps.StyleIndex))
	}
	if ps.StyleCount != nil {
		writeAttr(b, "presStyleCnt", strconv.Itoa(*ps.StyleCount))
	}
	if ps.Placeholder {
		writeAttr(b, "phldr", "1")
	}
	if ps.PlaceholderText != "" {
		writeAttr(b, "phldrT", ps.PlaceholderText)
	}
	for _, a := range ps.Extra {
		writeAttr(b, attrName(a.Name), a.Value)
	}
	closeElem(b, "dgm:prSet", ps.Raw)
}

func writeShape(b *bytes.Buffer, s *diagram.Shape) {
	inner := s.Raw
	// A fill on a shape with raw content came in through Decode and is
	// already part of that content; only a bare fill written by EmbedImage
	// needs serializing here.
	if s.Fill != nil && inner == "" {
		inner = `<a:blipFill><a:blip r:embed="` + escaped(s.Fill.RelID) +
			`"/><a:stretch><a:fillRect/></a:stretch></a:blipFill>`
	}
	b.WriteString("<dgm:spPr")
	closeElem(b, "dgm:spPr", inner)
}

func writeText(b *bytes.Buffer, t *diagram.Text) {
	b.WriteString("<dgm:t>")
	writePropElem(b, "a:bodyPr", t.BodyProps)
	writePropElem(b, "a:lstStyle", t.ListStyle)
	for i := range t.Paragraphs {
		para := &t.Paragraphs[i]
		b.WriteString("<a:p>")
		writePropElem(b, "a:pPr", para.Props)
		for _, r := range para.Runs {
			b.WriteString("<a:r>")
			writePropElem(b, "a:rPr", r.Props)
			b.WriteString("<a:t>")
			writeEscaped(b, r.Text)
			b.WriteString("</a:t></a:r>")
		}
		writePropElem(b, "a:endParaRPr", para.EndProps)
		b.WriteString("</a:p>")
	}
	b.WriteString("</dgm:t>")
}

// writePropElem writes one opaque property element: attributes, then any
// nested content verbatim. A nil property set writes nothing, preserving the
// absent/empty distinction.
func writePropElem(b *bytes.Buffer, name string, p *diagram.TextProps) {
	if p == nil {
		return
	}
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range p.Attrs {
		writeAttr(b, attrName(a.Name), a.Value)
	}
	closeElem(b, name, p.Raw)
}

// attrName maps a decoded attribute name back to its prefixed form. Decoding
// resolves prefixes to namespace URLs, so known namespaces are mapped back;
// attributes in unknown namespaces fall back to the bare local name.
func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case nsRel:
		return "r:" + n.Local
	case nsDrawing:
		return "a:" + n.Local
	}
	return n.Local
}

func writeConnection(b *bytes.Buffer, c *diagram.Connection) {
	b.WriteString(`<dgm:cxn modelId="`)
	writeEscaped(b, c.ID)
	b.WriteByte('"')
	if c.SeqID != 0 {
		writeAttr(b, "id", strconv.Itoa(c.SeqID))
	}
	if tag := connTypeTag(c); tag != "" {
		writeAttr(b, "type", tag)
	}
	writeAttr(b, "srcId", c.SourceID)
	writeAttr(b, "destId", c.DestID)
	writeAttr(b, "srcOrd", strconv.Itoa(c.SourceOrder))
	writeAttr(b, "destOrd", strconv.Itoa(c.DestOrder))
	if c.ParentTransitionID != "" {
		writeAttr(b, "parTransId", c.ParentTransitionID)
	}
	if c.SiblingTransitionID != "" {
		writeAttr(b, "sibTransId", c.SiblingTransitionID)
	}
	if c.LayoutID != "" {
		writeAttr(b, "presId", c.LayoutID)
	}
	b.WriteString("/>")
}

// connTypeTag returns the serialized type attribute for a connection.
// Parent/child edges return "" and serialize without one.
func connTypeTag(c *diagram.Connection) string {
	switch c.Kind {
	case diagram.ConnPresentationOf:
		return typePresOf
	case diagram.ConnPresentationParentOf:
		return typePresParOf
	case diagram.ConnOther:
		return c.RawKind
	}
	return ""
}

// closeElem finishes an element whose opening tag is written up to its
// attributes: self-closing when there is no content, otherwise content
// passed through verbatim.
func closeElem(b *bytes.Buffer, name, inner string) {
	if inner == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	b.WriteString(inner)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func writeAttr(b *bytes.Buffer, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	writeEscaped(b, value)
	b.WriteByte('"')
}

func writeEscaped(b *bytes.Buffer, s string) {
	_ = xml.EscapeText(b, []byte(s))
}

func escaped(s string) string {
	var b bytes.Buffer
	writeEscaped(&b, s)
	return b.String()
}

package dgmxml

import (
	"encoding/xml"
	"strconv"

	"github.com/tobim/smartgraph/pkg/diagram"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
)

// Point type tags of the serialized form. An editable node carries no tag.
const (
	typeDoc      = "doc"
	typeNode     = "node"
	typeAsst     = "asst"
	typePres     = "pres"
	typeParTrans = "parTrans"
	typeSibTrans = "sibTrans"
)

// Connection type tags. A parent/child edge carries no tag.
const (
	typePresOf    = "presOf"
	typePresParOf = "presParOf"
)

// The decode structs match by local name only, so documents with any
// namespace prefixing (or none) parse alike.

type xmlDataModel struct {
	Points      []xmlPt  `xml:"ptLst>pt"`
	Connections []xmlCxn `xml:"cxnLst>cxn"`
}

type xmlPt struct {
	ModelID string    `xml:"modelId,attr"`
	Type    string    `xml:"type,attr"`
	CxnID   string    `xml:"cxnId,attr"`
	PrSet   *xmlPrSet `xml:"prSet"`
	SpPr    *xmlSpPr  `xml:"spPr"`
	Text    *xmlText  `xml:"t"`
}

type xmlPrSet struct {
	PresAssocID  string `xml:"presAssocID,attr"`
	PresName     string `xml:"presName,attr"`
	PresStyleIdx string `xml:"presStyleIdx,attr"`
	PresStyleCnt string `xml:"presStyleCnt,attr"`
	Phldr        string `xml:"phldr,attr"`
	PhldrT       string `xml:"phldrT,attr"`
	// Extra collects attributes not named above, e.g. the layout identifiers
	// on the document root's property set.
	Extra []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

type xmlSpPr struct {
	Inner    string       `xml:",innerxml"`
	BlipFill *xmlBlipFill `xml:"blipFill"`
}

type xmlBlipFill struct {
	Blip *struct {
		Embed string `xml:"embed,attr"`
	} `xml:"blip"`
}

type xmlText struct {
	BodyPr     *xmlPropElem `xml:"bodyPr"`
	ListStyle  *xmlPropElem `xml:"lstStyle"`
	Paragraphs []xmlPara    `xml:"p"`
}

type xmlPropElem struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

type xmlPara struct {
	Props    *xmlPropElem `xml:"pPr"`
	Runs     []xmlRun     `xml:"r"`
	EndProps *xmlPropElem `xml:"endParaRPr"`
}

type xmlRun struct {
	Props *xmlPropElem `xml:"rPr"`
	Text  string       `xml:"t"`
}

type xmlCxn struct {
	ModelID    string `xml:"modelId,attr"`
	SeqID      string `xml:"id,attr"`
	Type       string `xml:"type,attr"`
	SrcID      string `xml:"srcId,attr"`
	DestID     string `xml:"destId,attr"`
	SrcOrd     int    `xml:"srcOrd,attr"`
	DestOrd    int    `xml:"destOrd,attr"`
	ParTransID string `xml:"parTransId,attr"`
	SibTransID string `xml:"sibTransId,attr"`
	PresID     string `xml:"presId,attr"`
}

// Decode parses a diagram-data sub-document into a model.
func Decode(blob []byte) (*diagram.Model, error) {
	var doc xmlDataModel
	if err := xml.Unmarshal(blob, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse diagram data")
	}

	m := diagram.NewModel()
	for _, pt := range doc.Points {
		p, err := pt.toPoint()
		if err != nil {
			return nil, err
		}
		if err := m.AddPoint(p); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "point %s", pt.ModelID)
		}
	}
	for _, cxn := range doc.Connections {
		if err := m.AddConnection(cxn.toConnection()); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "connection %s", cxn.ModelID)
		}
	}
	return m, nil
}

func (x *xmlPt) toPoint() (*diagram.Point, error) {
	kind, err := pointKind(x.Type)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "point %s", x.ModelID)
	}
	p := &diagram.Point{
		ID:    x.ModelID,
		Kind:  kind,
		CxnID: x.CxnID,
	}
	if x.PrSet != nil {
		p.Props = x.PrSet.toPropSet()
	}
	if x.SpPr != nil {
		p.Shape = x.SpPr.toShape()
	}
	if x.Text != nil {
		p.Text = x.Text.toText()
	}
	return p, nil
}

func pointKind(typ string) (diagram.PointKind, error) {
	switch typ {
	case "", typeNode:
		return diagram.KindDataNode, nil
	case typeDoc:
		return diagram.KindDocument, nil
	case typeAsst:
		return diagram.KindAssistant, nil
	case typePres:
		return diagram.KindPresentation, nil
	case typeParTrans:
		return diagram.KindParentTransition, nil
	case typeSibTrans:
		return diagram.KindSiblingTransition, nil
	}
	return 0, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown point type %q", typ)
}

func (x *xmlPrSet) toPropSet() *diagram.PropSet {
	return &diagram.PropSet{
		AssocID:         x.PresAssocID,
		Name:            x.PresName,
		StyleIndex:      optionalInt(x.PresStyleIdx),
		StyleCount:      optionalInt(x.PresStyleCnt),
		Placeholder:     xmlBool(x.Phldr),
		PlaceholderText: x.PhldrT,
		Raw:             x.Inner,
		Extra:           x.Extra,
	}
}

func (x *xmlSpPr) toShape() *diagram.Shape {
	s := &diagram.Shape{Raw: x.Inner}
	if x.BlipFill != nil && x.BlipFill.Blip != nil {
		// Surfaced for inspection. The raw content already carries the fill
		// markup, so Encode must not write it a second time.
		s.Fill = &diagram.ImageFill{RelID: x.BlipFill.Blip.Embed}
	}
	return s
}

func (x *xmlText) toText() *diagram.Text {
	t := &diagram.Text{
		BodyProps: x.BodyPr.toProps(),
		ListStyle: x.ListStyle.toProps(),
	}
	for _, para := range x.Paragraphs {
		p := diagram.Paragraph{
			Props:    para.Props.toProps(),
			EndProps: para.EndProps.toProps(),
		}
		for _, r := range para.Runs {
			p.Runs = append(p.Runs, diagram.Run{Props: r.Props.toProps(), Text: r.Text})
		}
		t.Paragraphs = append(t.Paragraphs, p)
	}
	return t
}

func (x *xmlPropElem) toProps() *diagram.TextProps {
	if x == nil {
		return nil
	}
	return &diagram.TextProps{Attrs: x.Attrs, Raw: x.Inner}
}

func (x *xmlCxn) toConnection() *diagram.Connection {
	c := &diagram.Connection{
		ID:                  x.ModelID,
		SourceID:            x.SrcID,
		DestID:              x.DestID,
		SourceOrder:         x.SrcOrd,
		DestOrder:           x.DestOrd,
		ParentTransitionID:  x.ParTransID,
		SiblingTransitionID: x.SibTransID,
		LayoutID:            x.PresID,
	}
	// A non-numeric id is treated as unassigned; Normalize backfills it.
	c.SeqID, _ = strconv.Atoi(x.SeqID)

	switch x.Type {
	case "":
		c.Kind = diagram.ConnParentChild
	case typePresOf:
		c.Kind = diagram.ConnPresentationOf
	case typePresParOf:
		c.Kind = diagram.ConnPresentationParentOf
	default:
		c.Kind = diagram.ConnOther
		c.RawKind = x.Type
	}
	return c
}

// optionalInt converts an attribute value to a pointer, keeping the
// absent/zero distinction: "" means the attribute was not present.
func optionalInt(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func xmlBool(v string) bool {
	return v == "1" || v == "true"
}

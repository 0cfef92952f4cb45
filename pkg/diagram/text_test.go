package diagram

import (
	"encoding/xml"
	"testing"
)

func attrs(pairs ...string) []xml.Attr {
	var out []xml.Attr
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, xml.Attr{Name: xml.Name{Local: pairs[i]}, Value: pairs[i+1]})
	}
	return out
}

func TestSetPlainPreservesRunProps(t *testing.T) {
	txt := &Text{Paragraphs: []Paragraph{{
		Props: &TextProps{Raw: "<a:buChar/>"},
		Runs: []Run{
			{Props: &TextProps{Attrs: attrs("lang", "de-DE", "b", "1")}, Text: "old "},
			{Props: &TextProps{Attrs: attrs("lang", "de-DE")}, Text: "text"},
		},
	}}}

	txt.SetPlain("new text")

	para := txt.Paragraphs[0]
	if len(para.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(para.Runs))
	}
	if para.Runs[0].Text != "new text" {
		t.Errorf("text = %q", para.Runs[0].Text)
	}
	// The single surviving run inherits the first run's formatting.
	got := para.Runs[0].Props.Attrs
	if len(got) != 2 || got[0].Value != "de-DE" || got[1].Name.Local != "b" {
		t.Errorf("run props = %v, want first run's attrs", got)
	}
	// Paragraph-level properties are untouched.
	if para.Props == nil || para.Props.Raw != "<a:buChar/>" {
		t.Errorf("paragraph props lost: %v", para.Props)
	}
}

func TestSetPlainEmptyParagraphUsesEndProps(t *testing.T) {
	txt := NewTextSkeleton()
	txt.SetPlain("hello")

	para := txt.Paragraphs[0]
	if len(para.Runs) != 1 || para.Runs[0].Text != "hello" {
		t.Fatalf("runs = %v", para.Runs)
	}
	if para.Runs[0].Props == nil || len(para.Runs[0].Props.Attrs) != 1 ||
		para.Runs[0].Props.Attrs[0].Value != "en-US" {
		t.Errorf("run props = %v, want end-paragraph lang attr", para.Runs[0].Props)
	}
	if para.EndProps == nil {
		t.Error("end-paragraph props removed")
	}
}

func TestPointSetTextClearsPlaceholder(t *testing.T) {
	pt := newDataPoint("{N}")
	pt.Props.Placeholder = true
	pt.Props.PlaceholderText = "[Text]"

	pt.SetText("Alpha")

	if pt.Props.Placeholder {
		t.Error("placeholder flag not cleared")
	}
	if got := pt.PlainText(); got != "Alpha" {
		t.Errorf("PlainText() = %q, want Alpha", got)
	}
}

func TestSetTextOnBarePoint(t *testing.T) {
	pt := &Point{ID: "{N}", Kind: KindDataNode}
	pt.SetText("x")
	if got := pt.PlainText(); got != "x" {
		t.Errorf("PlainText() = %q, want x", got)
	}
}

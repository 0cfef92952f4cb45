package cli

import (
	"testing"

	"github.com/tobim/smartgraph/pkg/diagram"
	"github.com/tobim/smartgraph/pkg/pack"
)

// pngStub is a minimal blob the image sniffer accepts as PNG.
var pngStub = []byte("\x89PNG\r\n\x1a\nstub")

// syncFixture builds a document root with n editable nodes named by letter.
// When withPicture is set, every node gets a picture-placeholder presentation
// point wired through a presentation-of edge so normalization keeps it.
func syncFixture(t *testing.T, n int, withPicture bool) *diagram.SmartArt {
	t.Helper()
	m := diagram.NewModel()
	if err := m.AddPoint(&diagram.Point{ID: "{DOC}", Kind: diagram.KindDocument}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		id := string(rune('A' + i))
		if err := m.AddPoint(&diagram.Point{ID: "{" + id + "}", Kind: diagram.KindDataNode}); err != nil {
			t.Fatal(err)
		}
		if _, err := m.ConnectParentChild("{DOC}", "{"+id+"}", "{CXN-"+id+"}", "", ""); err != nil {
			t.Fatal(err)
		}
		if !withPicture {
			continue
		}
		pict := &diagram.Point{
			ID:    "{PICT-" + id + "}",
			Kind:  diagram.KindPresentation,
			Props: &diagram.PropSet{AssocID: "{" + id + "}", Name: "pictRect"},
		}
		if err := m.AddPoint(pict); err != nil {
			t.Fatal(err)
		}
		err := m.AddConnection(&diagram.Connection{
			ID:       "{PO-" + id + "}",
			Kind:     diagram.ConnPresentationOf,
			SourceID: "{" + id + "}",
			DestID:   pict.ID,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return diagram.New(m)
}

func nodeTexts(sa *diagram.SmartArt) []string {
	nodes := sa.EditableNodes()
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = n.Text()
	}
	return texts
}

func TestSyncTextsRetextsAndAdds(t *testing.T) {
	sa := syncFixture(t, 2, false)

	if err := syncTexts(sa, []string{"one", "two", "three"}); err != nil {
		t.Fatalf("syncTexts: %v", err)
	}

	got := nodeTexts(sa)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d text = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSyncTextsLeavesSurplusNodes(t *testing.T) {
	sa := syncFixture(t, 2, false)
	sa.EditableNodes()[1].SetText("keep me")

	if err := syncTexts(sa, []string{"only"}); err != nil {
		t.Fatalf("syncTexts: %v", err)
	}

	got := nodeTexts(sa)
	if len(got) != 2 {
		t.Fatalf("got %d nodes, want 2", len(got))
	}
	if got[0] != "only" || got[1] != "keep me" {
		t.Errorf("texts = %q, want [only, keep me]", got)
	}
}

func TestSyncImagesEmbeds(t *testing.T) {
	m := syncFixture(t, 2, true).Model()
	pkg := pack.New()
	sa := diagram.New(m, diagram.WithImageRegistry(pkg))

	if err := syncImages(sa, [][]byte{pngStub, nil}); err != nil {
		t.Fatalf("syncImages: %v", err)
	}

	nodes := sa.EditableNodes()
	if nodes[0].Point().ImageRef == "" {
		t.Error("node 0 has no image reference")
	}
	if nodes[1].Point().ImageRef != "" {
		t.Errorf("node 1 image reference = %q, want none", nodes[1].Point().ImageRef)
	}
}

func TestSyncImagesRemovesNodeWithoutPlaceholder(t *testing.T) {
	sa := syncFixture(t, 1, false)

	// The second image needs a new node, but the layout has no picture
	// placeholder to show it, so the node is removed again.
	if err := syncImages(sa, [][]byte{pngStub, pngStub}); err != nil {
		t.Fatalf("syncImages: %v", err)
	}

	nodes := sa.EditableNodes()
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Point().ImageRef != "" {
		t.Errorf("image reference = %q, want none", nodes[0].Point().ImageRef)
	}
}

func TestRemoveEmptyNodes(t *testing.T) {
	sa := syncFixture(t, 3, true)
	nodes := sa.EditableNodes()
	nodes[0].SetText("keep")
	nodes[2].Point().ImageRef = "media/image1.png"

	if err := removeEmptyNodes(sa); err != nil {
		t.Fatalf("removeEmptyNodes: %v", err)
	}

	got := sa.EditableNodes()
	if len(got) != 2 {
		t.Fatalf("got %d nodes, want 2", len(got))
	}
	if got[0].Text() != "keep" {
		t.Errorf("node 0 text = %q, want keep", got[0].Text())
	}
	if got[1].Point().ImageRef != "media/image1.png" {
		t.Errorf("node 1 image reference = %q", got[1].Point().ImageRef)
	}
}

func TestRemoveEmptyNodesWhitespaceOnly(t *testing.T) {
	sa := syncFixture(t, 1, false)
	sa.EditableNodes()[0].SetText("   ")

	if err := removeEmptyNodes(sa); err != nil {
		t.Fatalf("removeEmptyNodes: %v", err)
	}
	if n := len(sa.EditableNodes()); n != 0 {
		t.Fatalf("got %d nodes, want 0", n)
	}
}

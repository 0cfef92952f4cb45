package diagram

import (
	"reflect"
	"testing"
)

func TestNormalizeIdempotent(t *testing.T) {
	m := pictureListDiagram()
	m.Normalize()
	want := snapshotModel(m)

	m.Normalize()
	if got := snapshotModel(m); !reflect.DeepEqual(got, want) {
		t.Errorf("second Normalize changed the model\n got: %+v\nwant: %+v", got, want)
	}
}

func TestNormalizeRefreshStyleCounts(t *testing.T) {
	m := pictureListDiagram()
	m.AddPoint(&Point{ID: "{B}", Kind: KindDataNode, Props: &PropSet{}})
	if _, err := m.ConnectParentChild("{DOC}", "{B}", "{CXN-B}", "", ""); err != nil {
		t.Fatal(err)
	}

	m.Normalize()

	for _, id := range []string{"{PICT-A}", "{TEXT-A}"} {
		p, _ := m.Point(id)
		if p.Props.StyleCount == nil || *p.Props.StyleCount != 2 {
			t.Errorf("%s style count = %v, want 2", id, p.Props.StyleCount)
		}
	}
	comp, _ := m.Point("{COMP-A}")
	if *comp.Props.StyleCount != 0 {
		t.Errorf("compNode style count = %d, want 0 (template value kept)", *comp.Props.StyleCount)
	}
}

func TestNormalizePurgesUnreferencedPresentations(t *testing.T) {
	m := pictureListDiagram()
	m.AddPoint(&Point{ID: "{STRAY}", Kind: KindPresentation,
		Props: &PropSet{AssocID: "{A}", Name: "pictRect"}})

	m.Normalize()

	if _, ok := m.Point("{STRAY}"); ok {
		t.Error("unreferenced presentation point survived Normalize")
	}
	if _, ok := m.Point("{PICT-A}"); !ok {
		t.Error("referenced presentation point was purged")
	}
}

func TestNormalizePurgesOrphanTransitions(t *testing.T) {
	m := pictureListDiagram()
	m.RemoveConnection("{CXN-A}")

	m.Normalize()

	for _, id := range []string{"{PT-A}", "{ST-A}"} {
		if _, ok := m.Point(id); ok {
			t.Errorf("transition %s survived with no referencing edge", id)
		}
	}
}

func TestNormalizeIgnoresTransitionRefsOnOtherEdges(t *testing.T) {
	m := pictureListDiagram()
	m.RemoveConnection("{CXN-A}")
	// A non-parent/child edge naming the transitions must not keep them.
	m.AddConnection(&Connection{ID: "{OTHER}", Kind: ConnOther, RawKind: "unknownRel",
		SourceID: "{DOC}", DestID: "{A}",
		ParentTransitionID: "{PT-A}", SiblingTransitionID: "{ST-A}"})

	m.Normalize()

	for _, id := range []string{"{PT-A}", "{ST-A}"} {
		if _, ok := m.Point(id); ok {
			t.Errorf("transition %s survived with no parent/child edge", id)
		}
	}
}

func TestNormalizeClosesSiblingOrderGaps(t *testing.T) {
	m := pictureListDiagram()
	m.AddPoint(&Point{ID: "{B}", Kind: KindDataNode, Props: &PropSet{}})
	m.AddConnection(&Connection{ID: "{CXN-B}", SeqID: 6, Kind: ConnParentChild,
		SourceID: "{DOC}", DestID: "{B}", SourceOrder: 3})

	m.Normalize()

	a, _ := m.Connection("{CXN-A}")
	b, _ := m.Connection("{CXN-B}")
	if a.SourceOrder != 0 || b.SourceOrder != 1 {
		t.Errorf("sibling orders = %d, %d; want 0, 1", a.SourceOrder, b.SourceOrder)
	}
}

func TestNormalizeRenumbersHierarchy(t *testing.T) {
	m := pictureListDiagram()

	m.AddPoint(&Point{ID: "{B}", Kind: KindDataNode, Props: &PropSet{}})
	m.AddPoint(&Point{ID: "{COMP-B}", Kind: KindPresentation,
		Props: &PropSet{AssocID: "{B}", Name: "compNode", StyleCount: intPtr(0)}})
	if _, err := m.ConnectParentChild("{DOC}", "{B}", "{CXN-B}", "", ""); err != nil {
		t.Fatal(err)
	}

	// Shuffle the hierarchy orders and add a stale child pointing at a
	// non-component presentation point.
	a, _ := m.Connection("{PPO-ROOT-A}")
	a.SourceOrder = 3
	m.AddConnection(&Connection{ID: "{PPO-ROOT-B}", Kind: ConnPresentationParentOf,
		SourceID: "{PRES-ROOT}", DestID: "{COMP-B}", SourceOrder: 7})
	m.AddConnection(&Connection{ID: "{PPO-STALE}", Kind: ConnPresentationParentOf,
		SourceID: "{PRES-ROOT}", DestID: "{PICT-A}"})

	m.Normalize()

	if _, ok := m.Connection("{PPO-STALE}"); ok {
		t.Error("stale hierarchy child survived Normalize")
	}
	if a.SourceOrder != 0 {
		t.Errorf("first hierarchy child order = %d, want 0", a.SourceOrder)
	}
	b, _ := m.Connection("{PPO-ROOT-B}")
	if b.SourceOrder != 1 {
		t.Errorf("second hierarchy child order = %d, want 1", b.SourceOrder)
	}

	// Presentation-of edges are never renumbered.
	pof, _ := m.Connection("{PRESOF-A}")
	if pof.SourceOrder != 0 || pof.DestOrder != 0 {
		t.Errorf("presentation-of orders = %d/%d, want 0/0", pof.SourceOrder, pof.DestOrder)
	}
}

func TestNormalizeDropsChildOfRemovedNode(t *testing.T) {
	m := pictureListDiagram()
	m.RemoveConnection("{CXN-A}") // {A} no longer parented at the root

	m.Normalize()

	if _, ok := m.Connection("{PPO-ROOT-A}"); ok {
		t.Error("hierarchy child of unparented node survived Normalize")
	}
}

func TestNormalizeBackfillSeqIDs(t *testing.T) {
	m := pictureListDiagram() // existing SeqIDs 1..5
	m.AddConnection(&Connection{ID: "{N1}", Kind: ConnOther, SourceID: "{DOC}", DestID: "{A}"})
	m.AddConnection(&Connection{ID: "{N2}", Kind: ConnOther, SourceID: "{DOC}", DestID: "{A}"})

	m.Normalize()

	n1, _ := m.Connection("{N1}")
	n2, _ := m.Connection("{N2}")
	if n1.SeqID != 6 || n2.SeqID != 7 {
		t.Errorf("backfilled ids = %d, %d; want 6, 7", n1.SeqID, n2.SeqID)
	}
}

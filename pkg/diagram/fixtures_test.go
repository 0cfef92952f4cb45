package diagram

import "fmt"

// seqIDs returns a deterministic ID source: {PREFIX-1}, {PREFIX-2}, ...
func seqIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("{%s-%d}", prefix, n)
	}
}

// emptyDiagram builds a model holding only a document root.
func emptyDiagram() *Model {
	m := NewModel()
	m.AddPoint(&Point{ID: "{DOC}", Kind: KindDocument, Props: &PropSet{}, Shape: &Shape{}})
	return m
}

// pictureListDiagram builds the smallest realistic picture-list diagram:
// a document root, one data node "A" with a full presentation subtree
// (presentation root, compNode, pictRect, textRect), its transition pair,
// and the connections a freshly authored diagram carries.
func pictureListDiagram() *Model {
	m := emptyDiagram()

	m.AddPoint(&Point{ID: "{A}", Kind: KindDataNode, Props: &PropSet{}, Shape: &Shape{}, Text: NewTextSkeleton()})
	m.AddPoint(&Point{ID: "{PT-A}", Kind: KindParentTransition, CxnID: "{CXN-A}", Props: &PropSet{}, Shape: &Shape{}, Text: NewTextSkeleton()})
	m.AddPoint(&Point{ID: "{ST-A}", Kind: KindSiblingTransition, CxnID: "{CXN-A}", Props: &PropSet{}, Shape: &Shape{}, Text: NewTextSkeleton()})

	m.AddPoint(&Point{ID: "{PRES-ROOT}", Kind: KindPresentation,
		Props: &PropSet{AssocID: "{DOC}", Name: "Name0", StyleCount: intPtr(0)}, Shape: &Shape{}})
	m.AddPoint(&Point{ID: "{COMP-A}", Kind: KindPresentation,
		Props: &PropSet{AssocID: "{A}", Name: "compNode", StyleIndex: intPtr(0), StyleCount: intPtr(0)}, Shape: &Shape{}})
	m.AddPoint(&Point{ID: "{PICT-A}", Kind: KindPresentation,
		Props: &PropSet{AssocID: "{A}", Name: "pictRect", StyleIndex: intPtr(0), StyleCount: intPtr(1)},
		Shape: &Shape{Raw: "<a:solidFill/>"}})
	m.AddPoint(&Point{ID: "{TEXT-A}", Kind: KindPresentation,
		Props: &PropSet{AssocID: "{A}", Name: "textRect", StyleIndex: intPtr(0), StyleCount: intPtr(1)}, Shape: &Shape{}})

	m.AddConnection(&Connection{ID: "{CXN-A}", SeqID: 1, Kind: ConnParentChild,
		SourceID: "{DOC}", DestID: "{A}", SourceOrder: 0, DestOrder: 0,
		ParentTransitionID: "{PT-A}", SiblingTransitionID: "{ST-A}"})
	m.AddConnection(&Connection{ID: "{PRESOF-A}", SeqID: 2, Kind: ConnPresentationOf,
		SourceID: "{A}", DestID: "{TEXT-A}", LayoutID: "urn:layout/picList"})
	m.AddConnection(&Connection{ID: "{PPO-ROOT-A}", SeqID: 3, Kind: ConnPresentationParentOf,
		SourceID: "{PRES-ROOT}", DestID: "{COMP-A}", SourceOrder: 0, LayoutID: "urn:layout/picList"})
	m.AddConnection(&Connection{ID: "{PPO-A-PICT}", SeqID: 4, Kind: ConnPresentationParentOf,
		SourceID: "{COMP-A}", DestID: "{PICT-A}", SourceOrder: 0, LayoutID: "urn:layout/picList"})
	m.AddConnection(&Connection{ID: "{PPO-A-TEXT}", SeqID: 5, Kind: ConnPresentationParentOf,
		SourceID: "{COMP-A}", DestID: "{TEXT-A}", SourceOrder: 1, LayoutID: "urn:layout/picList"})

	return m
}

// snapshot captures the observable state of a model for comparison.
type modelSnapshot struct {
	points []Point
	conns  []Connection
}

func snapshotModel(m *Model) modelSnapshot {
	var s modelSnapshot
	for _, p := range m.Points() {
		cp := *p
		cp.Props = p.Props.Clone()
		cp.Shape = p.Shape.Clone()
		s.points = append(s.points, cp)
	}
	for _, c := range m.Connections() {
		s.conns = append(s.conns, *c)
	}
	return s
}

func pointIDs(pts []*Point) []string {
	ids := make([]string, len(pts))
	for i, p := range pts {
		ids[i] = p.ID
	}
	return ids
}

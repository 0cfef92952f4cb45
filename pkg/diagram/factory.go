package diagram

// newDataPoint builds the structural skeleton of an editable content node:
// an empty property set, an empty shape, and the required text structure.
// The host format expects exactly this shape for nodes it lets a user edit.
func newDataPoint(id string) *Point {
	return &Point{
		ID:    id,
		Kind:  KindDataNode,
		Props: &PropSet{},
		Shape: &Shape{},
		Text:  NewTextSkeleton(),
	}
}

// newTransitionPair builds the parent and sibling transition points for a new
// parent/child edge. Both carry the connection ID they represent and the same
// skeleton as a data node; the host requires the full structure even though
// transitions are never directly edited.
func newTransitionPair(parTransID, sibTransID, cxnID string) (*Point, *Point) {
	mk := func(id string, kind PointKind) *Point {
		return &Point{
			ID:    id,
			Kind:  kind,
			CxnID: cxnID,
			Props: &PropSet{},
			Shape: &Shape{},
			Text:  NewTextSkeleton(),
		}
	}
	return mk(parTransID, KindParentTransition), mk(sibTransID, KindSiblingTransition)
}

// removeNodeSubtree removes everything a data node owns: first its
// presentation points, then any transition point left unreferenced by the
// surviving connections.
func (m *Model) removeNodeSubtree(nodeID string) {
	for _, pres := range m.PresentationsFor(nodeID) {
		m.RemovePoint(pres.ID)
	}
	m.removeOrphanTransitions()
}

// removeOrphanTransitions deletes every transition point whose ID is no
// longer referenced as a parent or sibling transition by a surviving
// parent/child edge. Only parent/child edges carry transitions; a matching
// ID on any other edge kind does not keep the point alive.
func (m *Model) removeOrphanTransitions() {
	inUse := make(map[string]bool)
	for _, c := range m.conns {
		if c.Kind != ConnParentChild {
			continue
		}
		if c.ParentTransitionID != "" {
			inUse[c.ParentTransitionID] = true
		}
		if c.SiblingTransitionID != "" {
			inUse[c.SiblingTransitionID] = true
		}
	}
	for _, p := range m.Points() {
		if p.Kind.IsTransition() && !inUse[p.ID] {
			m.RemovePoint(p.ID)
		}
	}
}

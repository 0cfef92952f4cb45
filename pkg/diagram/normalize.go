package diagram

import "slices"

// presRootName names the root presentation point of the layout hierarchy.
const presRootName = "Name0"

// Normalize runs the full normalization pass. It is invoked once, in full,
// after every mutating facade call, and it must be idempotent: a second run
// on its own output changes nothing.
//
// The steps feed into each other, so their order matters:
//
//  1. refresh the style count on pictRect/textRect presentation points;
//  2. purge presentation points no surviving connection touches;
//  3. purge transition points no parent/child edge references;
//  4. renumber each parent's surviving parent/child edges back to a
//     contiguous source-order range;
//  5. build the sibling-order table for data nodes under the document root;
//  6. renumber the presentation hierarchy below the root presentation point
//     to match that table, dropping stale children;
//  7. backfill missing numeric connection identifiers.
//
// Presentation-of edges are never touched: they stay at 0/0 regardless of
// the data node's position, while presentation-parent-of edges order siblings
// visually and are renumbered in step 6.
func (m *Model) Normalize() {
	m.refreshStyleCounts()
	m.purgeUnreferencedPresentations()
	m.removeOrphanTransitions()
	m.renumberSiblingOrders()

	order := m.rootSiblingOrder()
	m.renumberPresentationHierarchy(order)
	m.backfillSeqIDs()
}

// refreshStyleCounts sets the style count of every pictRect and textRect
// presentation point to the current total of editable nodes. Other
// presentation names keep their template-inherited count, commonly zero.
func (m *Model) refreshStyleCounts() {
	cnt := m.DataNodeCount()
	for _, p := range m.points {
		if p.Kind != KindPresentation || p.Props == nil {
			continue
		}
		switch p.Props.Name {
		case "pictRect", "textRect":
			p.Props.StyleCount = intPtr(cnt)
		}
	}
}

// purgeUnreferencedPresentations removes presentation points that no
// connection touches. Leftovers like these come from incomplete template
// clones or aborted edits and trip the host's validation.
func (m *Model) purgeUnreferencedPresentations() {
	referenced := make(map[string]bool, 2*len(m.conns))
	for _, c := range m.conns {
		referenced[c.SourceID] = true
		referenced[c.DestID] = true
	}
	for _, p := range m.Points() {
		if p.Kind == KindPresentation && !referenced[p.ID] {
			m.RemovePoint(p.ID)
		}
	}
}

// renumberSiblingOrders closes the gaps a removal leaves in the source
// orders of each parent's parent/child edges. Survivors keep their relative
// position and are reassigned 0..k-1, so the fan-out count used when the
// next edge is created again equals one past the highest live order.
func (m *Model) renumberSiblingOrders() {
	byParent := make(map[string][]*Connection)
	for _, c := range m.conns {
		if c.Kind == ConnParentChild {
			byParent[c.SourceID] = append(byParent[c.SourceID], c)
		}
	}
	for _, siblings := range byParent {
		slices.SortStableFunc(siblings, func(a, b *Connection) int { return a.SourceOrder - b.SourceOrder })
		for i, c := range siblings {
			c.SourceOrder = i
		}
	}
}

// rootSiblingOrder maps each data node parented at the document root to the
// source order of its parent/child edge. An absent document root yields an
// empty table, which makes the renumbering step drop every hierarchy child.
func (m *Model) rootSiblingOrder() map[string]int {
	order := make(map[string]int)
	root, ok := m.DocumentRoot()
	if !ok {
		return order
	}
	for _, c := range m.conns {
		if c.Kind == ConnParentChild && c.SourceID == root.ID {
			order[c.DestID] = c.SourceOrder
		}
	}
	return order
}

// renumberPresentationHierarchy re-derives the visual sibling order below
// the root presentation point. Children that are not component nodes of a
// live, root-parented data node are stale and removed; survivors are sorted
// by their data node's sibling order and renumbered 0..n-1.
func (m *Model) renumberPresentationHierarchy(dataOrder map[string]int) {
	rootPres := m.presentationRoot()
	if rootPres == nil {
		return
	}

	type child struct {
		order int
		conn  *Connection
	}
	var keep []child
	var stale []string

	for _, c := range m.conns {
		if c.Kind != ConnPresentationParentOf || c.SourceID != rootPres.ID {
			continue
		}
		dest, ok := m.Point(c.DestID)
		if !ok || dest.Kind != KindPresentation || dest.Props == nil || dest.Props.Name != "compNode" {
			stale = append(stale, c.ID)
			continue
		}
		ord, live := dataOrder[dest.Props.AssocID]
		if !live {
			stale = append(stale, c.ID)
			continue
		}
		keep = append(keep, child{order: ord, conn: c})
	}

	for _, id := range stale {
		m.RemoveConnection(id)
	}

	slices.SortStableFunc(keep, func(a, b child) int { return a.order - b.order })
	for i, ch := range keep {
		ch.conn.SourceOrder = i
	}
}

// presentationRoot returns the presentation point named "Name0", or nil.
// O(n) scan; diagrams are small.
func (m *Model) presentationRoot() *Point {
	for _, p := range m.points {
		if p.Kind == KindPresentation && p.Props != nil && p.Props.Name == presRootName {
			return p
		}
	}
	return nil
}

// backfillSeqIDs assigns sequential numeric identifiers to connections that
// lack one, continuing from one past the current maximum.
func (m *Model) backfillSeqIDs() {
	maxID := 0
	for _, c := range m.conns {
		if c.SeqID > maxID {
			maxID = c.SeqID
		}
	}
	next := maxID + 1
	for _, c := range m.conns {
		if c.SeqID == 0 {
			c.SeqID = next
			next++
		}
	}
}

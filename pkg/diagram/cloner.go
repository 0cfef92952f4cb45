package diagram

import (
	"cmp"
	"slices"
)

// clonePresentation replicates the presentation subtree of templateNodeID
// onto the freshly created data node newNodeID.
//
// When the template node has no presentation points this is a no-op: a
// diagram may legitimately have no presentation layer, and the new node then
// participates only in the logical layer.
//
// The clone covers three things:
//   - one new presentation point per template point, with identity, style
//     index, and style count set explicitly and everything else deep-copied;
//   - a mirror of every non-presentation-of connection touching a template
//     point, with template endpoints remapped to their clones;
//   - a single presentation-of edge from the new data node to the cloned
//     textRect, inheriting the layout ID from any existing presentation-of
//     edge. Without such an edge there is no known layout to attach to and
//     the step silently produces nothing.
func (m *Model) clonePresentation(newNodeID, templateNodeID string, ids IDSource) {
	templates := m.PresentationsFor(templateNodeID)
	if len(templates) == 0 {
		return
	}

	// Deterministic clone order regardless of document order.
	slices.SortStableFunc(templates, func(a, b *Point) int {
		return cmp.Compare(presName(a), presName(b))
	})

	// The new data node is already in the arena, so the style index is the
	// count of the others and the style count includes the new node.
	styleIdx := m.DataNodeCount() - 1
	styleCnt := styleIdx + 1

	cloneOf := make(map[string]string, len(templates))
	textRectID := ""

	for _, tmpl := range templates {
		clone := &Point{
			ID:    ids.NewID(),
			Kind:  KindPresentation,
			Props: tmpl.Props.Clone(),
			Shape: tmpl.Shape.Clone(),
		}
		if clone.Props == nil {
			clone.Props = &PropSet{}
		}
		if clone.Shape == nil {
			clone.Shape = &Shape{}
		}
		clone.Props.AssocID = newNodeID

		// Component nodes do not scale with item count: their style count is
		// copied from the template verbatim. Everything else that carries a
		// style count gets the computed total.
		if tmpl.Props != nil && tmpl.Props.StyleCount != nil && clone.Props.Name != "compNode" {
			clone.Props.StyleCount = intPtr(styleCnt)
		}
		if tmpl.Props != nil && tmpl.Props.StyleIndex != nil {
			clone.Props.StyleIndex = intPtr(styleIdx)
		}

		if clone.Props.Name == "textRect" {
			textRectID = clone.ID
		}

		cloneOf[tmpl.ID] = clone.ID
		m.AddPoint(clone)
	}

	m.mirrorTemplateConnections(cloneOf, ids)

	if textRectID != "" {
		m.addPresentationOf(newNodeID, textRectID, ids)
	}
}

// mirrorTemplateConnections copies every connection touching a template
// presentation point, remapping template endpoints to their clones.
// Presentation-of edges are skipped; the single one the new node needs is
// created separately against the cloned textRect.
func (m *Model) mirrorTemplateConnections(cloneOf map[string]string, ids IDSource) {
	var mirrored []*Connection
	for _, c := range m.conns {
		if c.Kind == ConnPresentationOf {
			continue
		}
		_, srcIsTmpl := cloneOf[c.SourceID]
		_, dstIsTmpl := cloneOf[c.DestID]
		if !srcIsTmpl && !dstIsTmpl {
			continue
		}
		mc := c.Clone()
		mc.ID = ids.NewID()
		mc.SeqID = 0 // backfilled by Normalize
		if id, ok := cloneOf[c.SourceID]; ok {
			mc.SourceID = id
		}
		if id, ok := cloneOf[c.DestID]; ok {
			mc.DestID = id
		}
		mirrored = append(mirrored, mc)
	}
	for _, c := range mirrored {
		m.AddConnection(c)
	}
}

// addPresentationOf creates the presentation-of edge from a data node to its
// textRect clone. Orders are fixed at 0/0 by host convention; the layout ID
// is inherited from any existing presentation-of edge.
func (m *Model) addPresentationOf(dataNodeID, textRectID string, ids IDSource) {
	layoutID := ""
	for _, c := range m.conns {
		if c.Kind == ConnPresentationOf && c.LayoutID != "" {
			layoutID = c.LayoutID
			break
		}
	}
	if layoutID == "" {
		return
	}
	m.AddConnection(&Connection{
		ID:          ids.NewID(),
		Kind:        ConnPresentationOf,
		SourceID:    dataNodeID,
		DestID:      textRectID,
		SourceOrder: 0,
		DestOrder:   0,
		LayoutID:    layoutID,
	})
}

func presName(p *Point) string {
	if p.Props == nil {
		return ""
	}
	return p.Props.Name
}

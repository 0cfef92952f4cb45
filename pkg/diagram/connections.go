package diagram

// ConnectParentChild creates a parent/child edge from parentID to childID.
// The new edge's source order is the current fan-out of the parent, so
// siblings keep a contiguous 0..k-1 range; destination order is always 0.
// The transition point IDs are recorded on the edge so the transitions stay
// referenced (an unreferenced transition is purged by Normalize).
func (m *Model) ConnectParentChild(parentID, childID, cxnID, parTransID, sibTransID string) (*Connection, error) {
	order := 0
	for _, c := range m.conns {
		if c.Kind == ConnParentChild && c.SourceID == parentID {
			order++
		}
	}
	c := &Connection{
		ID:                  cxnID,
		Kind:                ConnParentChild,
		SourceID:            parentID,
		DestID:              childID,
		SourceOrder:         order,
		DestOrder:           0,
		ParentTransitionID:  parTransID,
		SiblingTransitionID: sibTransID,
	}
	if err := m.AddConnection(c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveConnectionsFor deletes every connection that touches the given point
// as source or destination, and returns the number removed.
func (m *Model) RemoveConnectionsFor(pointID string) int {
	return m.DeleteConnectionsFunc(func(c *Connection) bool {
		return c.SourceID == pointID || c.DestID == pointID
	})
}

// ParentOf returns the source point of the parent/child edge whose
// destination is childID. A reachable data node has at most one such edge;
// when several exist the first in document order wins.
func (m *Model) ParentOf(childID string) (*Point, bool) {
	for _, c := range m.conns {
		if c.Kind == ConnParentChild && c.DestID == childID {
			return m.Point(c.SourceID)
		}
	}
	return nil, false
}

// RemoveOrphanConnections deletes every connection with at least one endpoint
// that does not resolve to a live point, and returns the number removed.
func (m *Model) RemoveOrphanConnections() int {
	return m.DeleteConnectionsFunc(func(c *Connection) bool {
		_, srcOK := m.pointIdx[c.SourceID]
		_, dstOK := m.pointIdx[c.DestID]
		return !srcOK || !dstOK
	})
}

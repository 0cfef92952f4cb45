package diagram

import (
	"encoding/xml"
	"errors"
	"slices"
)

var (
	// ErrInvalidPointID is returned by [Model.AddPoint] when the point ID is
	// empty. All points must have non-empty identifiers.
	ErrInvalidPointID = errors.New("point ID must not be empty")

	// ErrDuplicatePointID is returned by [Model.AddPoint] when a point with
	// the same ID already exists in the model. Point IDs must be unique.
	ErrDuplicatePointID = errors.New("duplicate point ID")

	// ErrInvalidConnectionID is returned by [Model.AddConnection] when the
	// connection ID is empty.
	ErrInvalidConnectionID = errors.New("connection ID must not be empty")

	// ErrDuplicateConnectionID is returned by [Model.AddConnection] when a
	// connection with the same ID already exists in the model.
	ErrDuplicateConnectionID = errors.New("duplicate connection ID")
)

// PointKind identifies the role of a point in the diagram graph.
// The set is closed: the serialized form knows exactly these six type tags,
// and every switch over PointKind in this package is exhaustive.
type PointKind int

const (
	// KindDataNode is an editable content node, the only kind a user edits.
	// In the serialized form editable nodes carry no type tag at all.
	KindDataNode PointKind = iota
	// KindDocument is the single root point all top-level data nodes attach
	// beneath.
	KindDocument
	// KindAssistant is a content node rendered outside the normal sibling
	// flow. Assistants are never created by this package, only preserved.
	KindAssistant
	// KindPresentation describes how a data node is visually rendered.
	KindPresentation
	// KindParentTransition is the structural point representing the visual
	// transition of a parent/child relationship.
	KindParentTransition
	// KindSiblingTransition is the structural point representing the visual
	// transition between siblings.
	KindSiblingTransition
)

// IsTransition reports whether the kind is one of the two transition kinds.
func (k PointKind) IsTransition() bool {
	return k == KindParentTransition || k == KindSiblingTransition
}

// ConnectionKind identifies the role of a directed edge.
type ConnectionKind int

const (
	// ConnParentChild is logical containment. It is the untyped default in
	// the serialized form: parent/child edges carry no type tag.
	ConnParentChild ConnectionKind = iota
	// ConnPresentationOf links a data node to the presentation point that
	// renders its text or picture. Its orders are fixed at 0/0.
	ConnPresentationOf
	// ConnPresentationParentOf orders presentation points below their
	// presentation parent.
	ConnPresentationParentOf
	// ConnOther is any edge kind this package does not interpret. The
	// original type tag is preserved in [Connection.RawKind] and passes
	// through cloning and serialization verbatim.
	ConnOther
)

// PropSet is the property set attached to a point. Most fields are only
// meaningful on presentation points; Placeholder and PlaceholderText appear
// on data nodes.
type PropSet struct {
	// AssocID names the data node a presentation point visualizes.
	AssocID string
	// Name is the presentation name, e.g. "compNode", "pictRect", "textRect"
	// or "Name0" for the presentation root.
	Name string
	// StyleIndex and StyleCount select a style variant in the host renderer.
	// nil means the attribute is absent, which is distinct from zero.
	StyleIndex *int
	StyleCount *int
	// Placeholder marks a node that still shows its placeholder text.
	// Setting real text clears it.
	Placeholder bool
	// PlaceholderText is the prompt shown for an empty node, e.g. "[Text]".
	PlaceholderText string
	// Raw holds any nested property content this package does not interpret.
	// It is deep-copied on clone and serialized verbatim.
	Raw string
	// Extra holds attributes this package does not interpret, such as the
	// layout identifiers on the document root's property set. Order is
	// preserved.
	Extra []xml.Attr
}

// Clone returns a deep copy of the property set.
func (p *PropSet) Clone() *PropSet {
	if p == nil {
		return nil
	}
	c := *p
	c.StyleIndex = clonedInt(p.StyleIndex)
	c.StyleCount = clonedInt(p.StyleCount)
	c.Extra = slices.Clone(p.Extra)
	return &c
}

// ImageFill references an embedded image part via its relationship ID.
type ImageFill struct {
	RelID string
}

// Shape is the shape-property substructure of a point. The content is opaque
// to the structural model except for the image fill written by EmbedImage.
type Shape struct {
	// Fill, when set, replaces the raw content with an image fill pointing at
	// a host-package relationship.
	Fill *ImageFill
	// Raw is verbatim shape content carried through load, clone, and
	// serialization.
	Raw string
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	if s == nil {
		return nil
	}
	c := *s
	if s.Fill != nil {
		f := *s.Fill
		c.Fill = &f
	}
	return &c
}

// Point is a node in the diagram graph.
type Point struct {
	// ID is the unique identifier in braced uppercase UUID form.
	ID string
	// Kind is the point's role.
	Kind PointKind
	// CxnID links a transition point to the connection it represents.
	// Empty for all other kinds.
	CxnID string
	// Props is the optional property set.
	Props *PropSet
	// Shape is the optional shape-property substructure.
	Shape *Shape
	// Text is the optional rich-text content.
	Text *Text
	// ImageRef records the image part a node is meant to show. It is set by
	// EmbedImage before the relationship is created, so the intent survives
	// a host-package refusal.
	ImageRef string
}

// Connection is a directed, typed edge between two points.
type Connection struct {
	// ID is the unique model identifier in braced uppercase UUID form.
	ID string
	// SeqID is the numeric identifier the host requires on every connection.
	// Zero means unassigned; Normalize backfills it.
	SeqID int
	// Kind is the edge's role. RawKind preserves the serialized type tag for
	// ConnOther edges.
	Kind    ConnectionKind
	RawKind string
	// SourceID and DestID are the endpoint point IDs.
	SourceID string
	DestID   string
	// SourceOrder and DestOrder control sibling and visual ordering.
	SourceOrder int
	DestOrder   int
	// ParentTransitionID and SiblingTransitionID reference the transition
	// points of a parent/child edge.
	ParentTransitionID  string
	SiblingTransitionID string
	// LayoutID correlates a presentation edge to a diagram layout.
	LayoutID string
}

// Clone returns a copy of the connection.
func (c *Connection) Clone() *Connection {
	d := *c
	return &d
}

// Model holds the point and connection sets of one diagram-data sub-document.
// Points live in an ordered arena with an id-to-index lookup table, so
// iteration preserves document order while lookup stays O(1). Connections
// follow the same scheme.
//
// Model exposes primitives only; policy (node lifecycle, presentation
// cloning, normalization ordering) lives in [SmartArt] and Normalize.
// The zero value is not usable: use [NewModel].
type Model struct {
	points   []*Point
	pointIdx map[string]int
	conns    []*Connection
	connIdx  map[string]int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		pointIdx: make(map[string]int),
		connIdx:  make(map[string]int),
	}
}

// AddPoint appends a point to the arena.
// Returns ErrInvalidPointID for an empty ID or ErrDuplicatePointID when the
// ID is already taken.
func (m *Model) AddPoint(p *Point) error {
	if p.ID == "" {
		return ErrInvalidPointID
	}
	if _, exists := m.pointIdx[p.ID]; exists {
		return ErrDuplicatePointID
	}
	m.pointIdx[p.ID] = len(m.points)
	m.points = append(m.points, p)
	return nil
}

// RemovePoint deletes the point with the given ID.
// Reports whether a point was removed. Connections touching the point are
// not affected; use [Model.RemoveOrphanConnections] afterwards.
func (m *Model) RemovePoint(id string) bool {
	i, ok := m.pointIdx[id]
	if !ok {
		return false
	}
	m.points = slices.Delete(m.points, i, i+1)
	m.reindexPoints()
	return true
}

// Point returns the point with the given ID and true, or nil and false.
func (m *Model) Point(id string) (*Point, bool) {
	i, ok := m.pointIdx[id]
	if !ok {
		return nil, false
	}
	return m.points[i], true
}

// Points returns all points in document order.
// The slice is a copy but the pointers refer to the live points.
func (m *Model) Points() []*Point {
	return slices.Clone(m.points)
}

// PointCount returns the number of points in the model.
func (m *Model) PointCount() int { return len(m.points) }

// DataNodes returns the editable content nodes in document order. The
// position of a node in this sequence is its index for index-based removal.
func (m *Model) DataNodes() []*Point {
	var nodes []*Point
	for _, p := range m.points {
		if p.Kind == KindDataNode {
			nodes = append(nodes, p)
		}
	}
	return nodes
}

// DataNodeCount returns the number of editable content nodes.
func (m *Model) DataNodeCount() int {
	n := 0
	for _, p := range m.points {
		if p.Kind == KindDataNode {
			n++
		}
	}
	return n
}

// DocumentRoot returns the single point of kind Document.
// The scan is O(n), acceptable because diagrams hold tens of points.
func (m *Model) DocumentRoot() (*Point, bool) {
	for _, p := range m.points {
		if p.Kind == KindDocument {
			return p, true
		}
	}
	return nil, false
}

// PresentationsFor returns the presentation points associated with the given
// data node, in document order.
func (m *Model) PresentationsFor(dataNodeID string) []*Point {
	var pres []*Point
	for _, p := range m.points {
		if p.Kind == KindPresentation && p.Props != nil && p.Props.AssocID == dataNodeID {
			pres = append(pres, p)
		}
	}
	return pres
}

// AddConnection appends a connection.
// Returns ErrInvalidConnectionID for an empty ID or ErrDuplicateConnectionID
// when the ID is already taken. Endpoints are not validated here: a mutation
// may add the connection before its points, as long as the enclosing
// operation leaves the model consistent.
func (m *Model) AddConnection(c *Connection) error {
	if c.ID == "" {
		return ErrInvalidConnectionID
	}
	if _, exists := m.connIdx[c.ID]; exists {
		return ErrDuplicateConnectionID
	}
	m.connIdx[c.ID] = len(m.conns)
	m.conns = append(m.conns, c)
	return nil
}

// RemoveConnection deletes the connection with the given ID.
// Reports whether a connection was removed.
func (m *Model) RemoveConnection(id string) bool {
	i, ok := m.connIdx[id]
	if !ok {
		return false
	}
	m.conns = slices.Delete(m.conns, i, i+1)
	m.reindexConns()
	return true
}

// DeleteConnectionsFunc removes every connection for which del returns true
// and returns the number removed.
func (m *Model) DeleteConnectionsFunc(del func(*Connection) bool) int {
	before := len(m.conns)
	m.conns = slices.DeleteFunc(m.conns, del)
	if len(m.conns) != before {
		m.reindexConns()
	}
	return before - len(m.conns)
}

// Connection returns the connection with the given model ID and true, or nil
// and false.
func (m *Model) Connection(id string) (*Connection, bool) {
	i, ok := m.connIdx[id]
	if !ok {
		return nil, false
	}
	return m.conns[i], true
}

// Connections returns all connections in document order.
// The slice is a copy but the pointers refer to the live connections.
func (m *Model) Connections() []*Connection {
	return slices.Clone(m.conns)
}

// ConnectionCount returns the number of connections in the model.
func (m *Model) ConnectionCount() int { return len(m.conns) }

func (m *Model) reindexPoints() {
	m.pointIdx = make(map[string]int, len(m.points))
	for i, p := range m.points {
		m.pointIdx[p.ID] = i
	}
}

func (m *Model) reindexConns() {
	m.connIdx = make(map[string]int, len(m.conns))
	for i, c := range m.conns {
		m.connIdx[c.ID] = i
	}
}

func clonedInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func intPtr(v int) *int { return &v }

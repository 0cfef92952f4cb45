package diagram

import (
	"strings"

	apperrors "github.com/tobim/smartgraph/pkg/errors"
)

// RelTypeImage is the relationship kind passed to the host package when
// embedding an image.
const RelTypeImage = "image"

// imageIndicators are the substrings that mark a presentation name as an
// image placeholder, matched case-insensitively.
var imageIndicators = []string{"pict", "image", "img", "pic", "picture", "fgimgplace"}

// ImagePartRef identifies an image part registered with the host package.
type ImagePartRef struct {
	// Target is the part name, e.g. "media/image1.png".
	Target string
}

// ImageRegistry is the host-package collaborator consumed by EmbedImage.
//
// CreateRelationship must mint a fresh relationship on every call, even for
// a target that already has one: each node needs its own independent
// reference to the image it shows.
type ImageRegistry interface {
	RegisterImage(data []byte) (ImagePartRef, error)
	CreateRelationship(kind, target string) (string, error)
}

// SmartArt is the facade over a diagram-data model. It orchestrates node
// creation, presentation cloning, and normalization for the two public
// mutations, AddNode and RemoveNode, plus image-placeholder embedding.
//
// SmartArt is a single-writer structure; see the package comment for the
// concurrency contract.
type SmartArt struct {
	model  *Model
	ids    IDSource
	images ImageRegistry
}

// Option configures a SmartArt facade.
type Option func(*SmartArt)

// WithImageRegistry attaches the host package used by EmbedImage.
// Without one, EmbedImage degrades: the image reference is recorded but no
// relationship is created.
func WithImageRegistry(r ImageRegistry) Option {
	return func(s *SmartArt) { s.images = r }
}

// WithIDSource replaces the identifier allocator. Tests use this to make
// allocation deterministic.
func WithIDSource(ids IDSource) Option {
	return func(s *SmartArt) { s.ids = ids }
}

// New wraps a model in a SmartArt facade.
func New(m *Model, opts ...Option) *SmartArt {
	s := &SmartArt{model: m, ids: UUIDSource{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the underlying model.
func (s *SmartArt) Model() *Model { return s.model }

// Node is a handle to a single point, bound to the facade that produced it.
type Node struct {
	pt *Point
	sa *SmartArt
}

// ID returns the point's unique identifier.
func (n *Node) ID() string { return n.pt.ID }

// Kind returns the point's kind.
func (n *Node) Kind() PointKind { return n.pt.Kind }

// Text returns the node's plain text.
func (n *Node) Text() string { return n.pt.PlainText() }

// SetText replaces the node's text, preserving run and paragraph formatting.
func (n *Node) SetText(value string) { n.pt.SetText(value) }

// Point returns the underlying point.
func (n *Node) Point() *Point { return n.pt }

// HasImagePlaceholder reports whether any presentation point associated with
// this node has an image-indicating presentation name.
func (n *Node) HasImagePlaceholder() bool {
	return n.sa.imagePlaceholderFor(n.pt.ID) != nil
}

// EditableNodes returns handles to the editable content nodes in document
// order.
func (s *SmartArt) EditableNodes() []*Node {
	pts := s.model.DataNodes()
	nodes := make([]*Node, len(pts))
	for i, pt := range pts {
		nodes[i] = &Node{pt: pt, sa: s}
	}
	return nodes
}

// parentMode enumerates the three parent selectors of AddNode.
type parentMode int

const (
	parentSibling parentMode = iota // default: sibling of the last editable node
	parentExplicit
	parentRoot
)

// Parent selects where AddNode attaches the new node. The zero value is
// [Sibling].
type Parent struct {
	mode parentMode
	node *Node
}

// Sibling attaches the new node next to the last editable node, under that
// node's parent. With no editable nodes it falls back to the document root.
func Sibling() Parent { return Parent{mode: parentSibling} }

// Under attaches the new node below the given node.
func Under(n *Node) Parent { return Parent{mode: parentExplicit, node: n} }

// AtRoot attaches the new node directly below the document root.
func AtRoot() Parent { return Parent{mode: parentRoot} }

// resolveParent computes the effective parent point before any mutation.
// The snapshot must be taken first: creating the node changes what "last
// editable node" means. A nil result means no parent edge is created.
func (s *SmartArt) resolveParent(parent Parent) *Point {
	switch parent.mode {
	case parentExplicit:
		if parent.node != nil {
			return parent.node.pt
		}
	case parentRoot:
		// fall through to the root lookup below
	case parentSibling:
		if nodes := s.model.DataNodes(); len(nodes) > 0 {
			last := nodes[len(nodes)-1]
			if p, ok := s.model.ParentOf(last.ID); ok {
				return p
			}
		}
	}
	root, _ := s.model.DocumentRoot()
	return root
}

// AddNode adds a new editable node with the given text.
//
// The call allocates four identifiers (node, connection, parent transition,
// sibling transition), creates the node and its transition pair, connects it
// to the resolved parent, clones the presentation subtree of an existing
// node when one has presentation points, and runs the normalization pass.
// The text, when non-empty, is set last so formatting defaults survive.
func (s *SmartArt) AddNode(text string, parent Parent) (*Node, error) {
	parentPt := s.resolveParent(parent)

	nodeID := s.ids.NewID()
	cxnID := s.ids.NewID()
	parTransID := s.ids.NewID()
	sibTransID := s.ids.NewID()

	// All four identifiers must be fresh before the first point goes in, so
	// a colliding allocator fails the call without mutating the model.
	seen := make(map[string]bool, 4)
	for _, id := range []string{nodeID, cxnID, parTransID, sibTransID} {
		_, pointTaken := s.model.Point(id)
		_, connTaken := s.model.Connection(id)
		if id == "" || pointTaken || connTaken || seen[id] {
			return nil, apperrors.New(apperrors.ErrCodeInternal, "allocator returned a stale identifier %q", id)
		}
		seen[id] = true
	}

	pt := newDataPoint(nodeID)
	if err := s.model.AddPoint(pt); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "add data node")
	}
	parTrans, sibTrans := newTransitionPair(parTransID, sibTransID, cxnID)
	if err := s.model.AddPoint(parTrans); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "add parent transition")
	}
	if err := s.model.AddPoint(sibTrans); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "add sibling transition")
	}

	if parentPt != nil {
		if _, err := s.model.ConnectParentChild(parentPt.ID, nodeID, cxnID, parTransID, sibTransID); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "connect parent")
		}
	}

	if tmpl := s.presentationTemplate(nodeID); tmpl != "" {
		s.model.clonePresentation(nodeID, tmpl, s.ids)
	}

	s.model.Normalize()

	node := &Node{pt: pt, sa: s}
	if text != "" {
		node.SetText(text)
	}
	return node, nil
}

// presentationTemplate returns the ID of the first editable node other than
// newNodeID that has a presentation subtree, or "" when the diagram has no
// presentation layer to copy.
func (s *SmartArt) presentationTemplate(newNodeID string) string {
	for _, pt := range s.model.DataNodes() {
		if pt.ID == newNodeID {
			continue
		}
		if len(s.model.PresentationsFor(pt.ID)) > 0 {
			return pt.ID
		}
	}
	return ""
}

// RemoveNodeAt removes the editable node at the given position in the
// current editable-node sequence.
func (s *SmartArt) RemoveNodeAt(index int) error {
	nodes := s.EditableNodes()
	if index < 0 || index >= len(nodes) {
		return apperrors.New(apperrors.ErrCodeIndexOutOfRange,
			"node index %d out of range (have %d editable nodes)", index, len(nodes))
	}
	return s.RemoveNode(nodes[index])
}

// RemoveNode removes a node and everything it owns: its edges, its
// presentation points, its now-unreferenced transition points, and finally
// any connection left dangling. The normalization pass then restores the
// derived attributes (sibling order, style counts).
func (s *SmartArt) RemoveNode(n *Node) error {
	if n == nil {
		return apperrors.New(apperrors.ErrCodeNotFound, "nil node")
	}
	live, ok := s.model.Point(n.pt.ID)
	if !ok || live != n.pt {
		return apperrors.New(apperrors.ErrCodeNotFound, "node %s does not belong to this diagram", n.pt.ID)
	}

	id := n.pt.ID
	s.model.RemoveConnectionsFor(id)
	s.model.removeNodeSubtree(id)
	s.model.RemovePoint(id)
	s.model.RemoveOrphanConnections()
	s.model.Normalize()
	return nil
}

// EmbedImage registers image data with the host package and points the
// node's picture placeholder at it.
//
// The node must have a presentation point whose name contains an image
// indicator; otherwise the call fails with INVALID_OPERATION and no point or
// connection is created.
//
// A refusal by the host package degrades rather than fails: the image
// reference recorded on the node is kept so the intent survives, and the
// returned error carries the DEGRADED code. The diagram stays structurally
// valid either way.
func (s *SmartArt) EmbedImage(n *Node, image []byte) (string, error) {
	pict := s.imagePlaceholderFor(n.pt.ID)
	if pict == nil {
		return "", apperrors.New(apperrors.ErrCodeInvalidOperation,
			"node %s has no image placeholder", n.pt.ID)
	}

	if s.images == nil {
		return "", apperrors.New(apperrors.ErrCodeDegraded, "no host package attached")
	}

	ref, err := s.images.RegisterImage(image)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeDegraded, err, "host package refused image")
	}
	n.pt.ImageRef = ref.Target

	relID, err := s.images.CreateRelationship(RelTypeImage, ref.Target)
	if err != nil {
		// Intent is preserved in the node's image reference.
		return "", apperrors.Wrap(apperrors.ErrCodeDegraded, err, "host package refused relationship")
	}

	// The new fill replaces whatever the placeholder carried before.
	pict.Shape = &Shape{Fill: &ImageFill{RelID: relID}}
	return relID, nil
}

// imagePlaceholderFor returns the first presentation point associated with
// the node whose name contains an image indicator, or nil.
func (s *SmartArt) imagePlaceholderFor(nodeID string) *Point {
	for _, pres := range s.model.PresentationsFor(nodeID) {
		name := strings.ToLower(presName(pres))
		for _, ind := range imageIndicators {
			if strings.Contains(name, ind) {
				return pres
			}
		}
	}
	return nil
}

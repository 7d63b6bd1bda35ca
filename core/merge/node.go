package merge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"asset-diff/core/tree"
)

var (
	// ErrNilChild is returned when a reconciler attaches a nil child.
	ErrNilChild = errors.New("nil child node")

	// ErrMemberCount is returned when two sides of the same resolved type
	// disagree on their number of members.
	ErrMemberCount = errors.New("member count mismatch")
)

// Node is one aligned triple of input nodes plus its classification.
type Node struct {
	// Base, Side1 and Side2 are the input nodes. Any of them may be nil.
	Base  *tree.Node
	Side1 *tree.Node
	Side2 *tree.Node

	// Kind is the change classification of this node.
	Kind ChangeKind

	// Type is the reconciled effective type, or nil if no side had a value.
	Type *tree.Type

	// Name is the member slot name when the node is an object member.
	Name string

	// Key is the entry key when the node is a map item.
	Key any

	// Members are the reconciled object members, in slot order.
	Members []*Node

	// Items are the reconciled array, list or map items.
	Items []*Node

	parent *Node
}

// Parent returns the node this node is attached to, or nil for the root.
// It is a back-reference only; the parent owns its children.
func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) addMember(member *Node) error {
	if member == nil {
		return fmt.Errorf("add member: %w", ErrNilChild)
	}
	n.attach(member)
	n.Members = append(n.Members, member)
	return nil
}

func (n *Node) addItem(item *Node) error {
	if item == nil {
		return fmt.Errorf("add item: %w", ErrNilChild)
	}
	n.attach(item)
	n.Items = append(n.Items, item)
	return nil
}

// attach links child to n. A changed child marks an unchanged parent as
// HasChangedChildren; any other kind already set on the parent is kept.
func (n *Node) attach(child *Node) {
	child.parent = n
	if child.Kind != Unchanged && n.Kind == Unchanged {
		n.Kind = HasChangedChildren
	}
}

// HasDifferences reports whether this node or any descendant is not Unchanged.
func (n *Node) HasDifferences() bool {
	if n == nil {
		return false
	}
	if n.Kind != Unchanged {
		return true
	}
	for _, m := range n.Members {
		if m.HasDifferences() {
			return true
		}
	}
	for _, item := range n.Items {
		if item.HasDifferences() {
			return true
		}
	}
	return false
}

// Difference is a changed node and its location in the merge tree.
type Difference struct {
	Path Path
	Node *Node
}

// Differences lists every node whose own kind is a change, in depth-first
// order. Nodes that are only HasChangedChildren are traversed, not listed.
func (n *Node) Differences() []Difference {
	var diffs []Difference
	n.Walk(func(path Path, node *Node) bool {
		if node.Kind != Unchanged && node.Kind != HasChangedChildren {
			diffs = append(diffs, Difference{Path: path, Node: node})
		}
		return true
	})
	return diffs
}

// Walk visits n and its descendants depth-first, members before items.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(path Path, node *Node) bool) {
	if n == nil {
		return
	}
	n.walk(nil, fn)
}

func (n *Node) walk(path Path, fn func(Path, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for i, m := range n.Members {
		m.walk(path.append(Segment{Kind: SegmentMember, Index: i, Name: m.Name}), fn)
	}
	keyed := n.Type != nil && n.Type.Kind == tree.KindMap
	for i, item := range n.Items {
		seg := Segment{Kind: SegmentItem, Index: i}
		if keyed {
			seg = Segment{Kind: SegmentKey, Index: i, Key: item.Key}
		}
		item.walk(path.append(seg), fn)
	}
}

// SegmentKind identifies how a path segment addresses a child.
type SegmentKind int

const (
	// SegmentMember addresses an object member slot.
	SegmentMember SegmentKind = iota
	// SegmentItem addresses an array or list item by position.
	SegmentItem
	// SegmentKey addresses a map entry by key.
	SegmentKey
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Index int
	Name  string
	Key   any
}

func (s Segment) String() string {
	switch s.Kind {
	case SegmentMember:
		if s.Name != "" {
			return "." + s.Name
		}
		return ".#" + strconv.Itoa(s.Index)
	case SegmentKey:
		if str, ok := s.Key.(string); ok {
			return "[" + strconv.Quote(str) + "]"
		}
		return fmt.Sprintf("[%v]", s.Key)
	default:
		return "[" + strconv.Itoa(s.Index) + "]"
	}
}

// Path locates a node from the root of a merge tree.
type Path []Segment

func (p Path) append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteString("$")
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

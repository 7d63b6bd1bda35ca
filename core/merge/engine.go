package merge

import (
	"fmt"
	"reflect"

	"asset-diff/core/tree"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
)

// engine holds the state of one computation and the first contract violation
// raised inside an equality check.
type engine struct {
	log      *zap.Logger
	removals bool
	err      error
}

func newEngine(o options) *engine {
	return &engine{log: o.logger, removals: o.removals}
}

// diffNode reconciles three nodes believed to represent the same logical slot.
func (e *engine) diffNode(base, side1, side2 *tree.Node) (*Node, error) {
	n := &Node{Base: base, Side1: side1, Side2: side2}

	// Nodes without a type (nulls) do not take part in type resolution.
	var ref *tree.Node
	for _, side := range [...]*tree.Node{base, side1, side2} {
		if side.EffectiveType() == nil {
			continue
		}
		if ref == nil {
			ref = side
			continue
		}
		if side.Shape() != ref.Shape() {
			e.log.Debug("Type mismatch",
				zap.Stringer("reference", ref.Shape()),
				zap.Stringer("other", side.Shape()),
			)
			n.Kind = TypeMismatch
			return n, nil
		}
		if !side.EffectiveType().Equal(ref.EffectiveType()) {
			e.log.Debug("Type conflict",
				zap.Stringer("reference", ref.EffectiveType()),
				zap.Stringer("other", side.EffectiveType()),
			)
			n.Kind = TypeConflict
			return n, nil
		}
	}

	if ref == nil {
		return n, nil
	}
	n.Type = ref.EffectiveType()

	if ref.IsComparable() {
		n.Kind = compareScalars(base, side1, side2)
		return n, nil
	}

	// A present null against a composite replaces the whole value.
	if hasNull(base, side1, side2) {
		kind, err := e.compareSlots(base, side1, side2)
		if err != nil {
			return nil, err
		}
		n.Kind = kind
		return n, nil
	}

	if err := e.diffMembers(n, base, side1, side2); err != nil {
		return nil, err
	}

	var err error
	switch ref.Shape() {
	case tree.ShapeArray:
		err = e.diffArray(n, base, side1, side2)
	case tree.ShapeList:
		err = e.diffList(n, base, side1, side2)
	case tree.ShapeMap:
		err = e.diffMap(n, base, side1, side2)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

var scalarOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateNaNs(),
}

// sameValue compares two leaf nodes by value. An absent node only equals
// another absent node; a present null equals another present null.
func sameValue(a, b *tree.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return cmp.Equal(a.Instance, b.Instance, scalarOptions...)
}

func compareScalars(base, side1, side2 *tree.Node) ChangeKind {
	return classify(sameValue(base, side1), sameValue(base, side2), sameValue(side1, side2))
}

func classify(base1, base2, sides bool) ChangeKind {
	switch {
	case base1 && base2:
		return Unchanged
	case base2:
		return ChangedBySide1
	case base1:
		return ChangedBySide2
	case sides:
		return ChangedByBothIdentically
	default:
		return Conflict
	}
}

func hasNull(sides ...*tree.Node) bool {
	for _, side := range sides {
		if side.IsNull() {
			return true
		}
	}
	return false
}

// compareSlots classifies a triple as whole values: nulls equal only nulls
// and two composites are equal when diffing them yields no change.
func (e *engine) compareSlots(base, side1, side2 *tree.Node) (ChangeKind, error) {
	var same [3]bool
	for i, pair := range [...][2]*tree.Node{{base, side1}, {base, side2}, {side1, side2}} {
		eq, err := e.sameSlot(pair[0], pair[1])
		if err != nil {
			return Unchanged, err
		}
		same[i] = eq
	}
	return classify(same[0], same[1], same[2]), nil
}

func (e *engine) sameSlot(a, b *tree.Node) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull(), nil
	}
	n, err := e.diffNode(a, b, a)
	if err != nil {
		return false, err
	}
	return !n.HasDifferences(), nil
}

func (e *engine) diffMembers(n *Node, base, side1, side2 *tree.Node) error {
	count := -1
	for _, side := range [...]*tree.Node{base, side1, side2} {
		if side == nil || !side.HasMembers {
			continue
		}
		if count < 0 {
			count = len(side.Members)
		} else if len(side.Members) != count {
			return fmt.Errorf("%w: %d and %d members for %s", ErrMemberCount, count, len(side.Members), n.Type)
		}
	}

	for i := 0; i < count; i++ {
		child, err := e.diffNode(member(base, i), member(side1, i), member(side2, i))
		if err != nil {
			return err
		}
		child.Name = memberName(child)
		if err := n.addMember(child); err != nil {
			return err
		}
	}
	return nil
}

func member(n *tree.Node, i int) *tree.Node {
	if n == nil || !n.HasMembers {
		return nil
	}
	return n.Members[i]
}

func memberName(n *Node) string {
	for _, side := range [...]*tree.Node{n.Base, n.Side1, n.Side2} {
		if side != nil && side.Name != "" {
			return side.Name
		}
	}
	return ""
}

func (e *engine) diffArray(n *Node, base, side1, side2 *tree.Node) error {
	length := -1
	for _, side := range [...]*tree.Node{base, side1, side2} {
		if side.EffectiveType() == nil {
			continue
		}
		if length >= 0 && len(side.Items) != length {
			e.log.Debug("Array size conflict",
				zap.Stringer("type", n.Type),
				zap.Int("length", length),
				zap.Int("other", len(side.Items)),
			)
			n.Kind = SizeConflict
			return nil
		}
		length = len(side.Items)
	}

	for i := 0; i < length; i++ {
		child, err := e.diffNode(item(base, i), item(side1, i), item(side2, i))
		if err != nil {
			return err
		}
		if err := n.addItem(child); err != nil {
			return err
		}
	}
	return nil
}

func item(n *tree.Node, i int) *tree.Node {
	if n == nil || i >= len(n.Items) {
		return nil
	}
	return n.Items[i]
}

func items(n *tree.Node) []*tree.Node {
	if n == nil {
		return nil
	}
	return n.Items
}

// keyGroup holds the entries sharing one key across the three sides.
type keyGroup struct {
	key                any
	base, side1, side2 *tree.Node
}

func (e *engine) diffMap(n *Node, base, side1, side2 *tree.Node) error {
	groups := make(map[any]*keyGroup)
	var order []*keyGroup
	group := func(key any) *keyGroup {
		g, ok := groups[key]
		if !ok {
			g = &keyGroup{key: key}
			groups[key] = g
			order = append(order, g)
		}
		return g
	}

	for _, entry := range items(base) {
		group(entry.Key).base = entry
	}
	for _, entry := range items(side1) {
		group(entry.Key).side1 = entry
	}
	for _, entry := range items(side2) {
		group(entry.Key).side2 = entry
	}

	for _, g := range order {
		var child *Node
		switch {
		case g.side1 != nil && g.side2 != nil:
			var err error
			if child, err = e.diffNode(g.base, g.side1, g.side2); err != nil {
				return err
			}
		case g.side1 == nil:
			// Present in base and missing from side1 is kept, not deleted.
			kind := ChangedBySide1
			if g.base == nil {
				kind = ChangedBySide2
			}
			child = &Node{Base: g.base, Side2: g.side2, Kind: kind}
		default:
			kind := ChangedBySide2
			if g.base == nil {
				kind = ChangedBySide1
			}
			child = &Node{Base: g.base, Side1: g.side1, Kind: kind}
		}

		if child.Type == nil {
			child.Type = resolvedType(child.Base, child.Side1, child.Side2)
		}
		child.Key = g.key
		if err := n.addItem(child); err != nil {
			return err
		}
	}
	return nil
}

// resolvedType returns the effective type of the first typed side.
func resolvedType(sides ...*tree.Node) *tree.Type {
	for _, side := range sides {
		if t := side.EffectiveType(); t != nil {
			return t
		}
	}
	return nil
}

// fail records the first contract violation raised where no error can be returned.
func (e *engine) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// takeErr returns and clears the recorded contract violation.
func (e *engine) takeErr() error {
	err := e.err
	e.err = nil
	return err
}

package merge

import (
	"sort"

	"asset-diff/core/diff3"
	"asset-diff/core/tree"

	"go.uber.org/zap"
)

// listEntry is a reconciled list item waiting to be attached, with the index
// of its side1 item (-1 when side1 has none) used for ordering.
type listEntry struct {
	node       *Node
	side1Index int
}

func (e *engine) diffList(n *Node, base, side1, side2 *tree.Node) error {
	baseItems, items1, items2 := items(base), items(side1), items(side2)

	memo := newEqualityMemo(e)
	blocks := diff3.Align(baseItems, items1, items2, memo.equal)
	if err := e.takeErr(); err != nil {
		return err
	}

	l := &listDiff{engine: e, base: baseItems, side1: items1, side2: items2}
	for _, block := range blocks {
		var err error
		switch block.Kind {
		case diff3.Equal:
			for o := 0; o < block.Base.Len; o++ {
				b := baseItems[block.Base.From+o]
				l.add(&Node{
					Base:  b,
					Side1: items1[block.Side1.From+o],
					Side2: items2[block.Side2.From+o],
					Kind:  Unchanged,
					Type:  b.EffectiveType(),
				}, block.Side1.From+o)
			}
		case diff3.InsertedBySide1:
			l.changedBySide1(block)
		case diff3.InsertedBySide2:
			l.changedBySide2(block)
		case diff3.InsertedByBoth:
			l.changedByBoth(block)
		case diff3.Conflict:
			err = l.conflict(block)
		}
		if err != nil {
			return err
		}
	}

	// Descending side1 index: side1's order leads, items missing from side1 trail.
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].side1Index > l.entries[j].side1Index
	})
	for _, entry := range l.entries {
		if err := n.addItem(entry.node); err != nil {
			return err
		}
	}
	return nil
}

// listDiff accumulates the reconciled items of one list.
type listDiff struct {
	engine             *engine
	base, side1, side2 []*tree.Node
	entries            []listEntry
}

func (l *listDiff) add(node *Node, side1Index int) {
	if node.Type == nil {
		node.Type = resolvedType(node.Base, node.Side1, node.Side2)
	}
	l.entries = append(l.entries, listEntry{node: node, side1Index: side1Index})
}

// at returns the element at offset o of range r, or nil past its end.
func at(items []*tree.Node, r diff3.Range, o int) *tree.Node {
	if o >= r.Len {
		return nil
	}
	return items[r.From+o]
}

func indexIn(r diff3.Range, o int) int {
	if o >= r.Len {
		return -1
	}
	return r.From + o
}

// changedBySide1 adds one node per item side1 contributed to the block.
func (l *listDiff) changedBySide1(block diff3.Block) {
	for o := 0; o < block.Side1.Len; o++ {
		l.add(&Node{Side1: l.side1[block.Side1.From+o], Kind: ChangedBySide1}, block.Side1.From+o)
	}
	if l.engine.removals {
		for o := 0; o < block.Base.Len; o++ {
			l.add(&Node{
				Base:  l.base[block.Base.From+o],
				Side2: at(l.side2, block.Side2, o),
				Kind:  ChangedBySide1,
			}, -1)
		}
	}
}

// changedBySide2 mirrors changedBySide1 for blocks where side1 still matches base.
func (l *listDiff) changedBySide2(block diff3.Block) {
	for o := 0; o < block.Side2.Len; o++ {
		l.add(&Node{Side2: l.side2[block.Side2.From+o], Kind: ChangedBySide2}, -1)
	}
	if l.engine.removals {
		for o := 0; o < block.Base.Len; o++ {
			l.add(&Node{
				Base:  l.base[block.Base.From+o],
				Side1: at(l.side1, block.Side1, o),
				Kind:  ChangedBySide2,
			}, indexIn(block.Side1, o))
		}
	}
}

// changedByBoth adds one node per item both sides contributed identically.
func (l *listDiff) changedByBoth(block diff3.Block) {
	for o := 0; o < block.Side1.Len; o++ {
		l.add(&Node{
			Side1: l.side1[block.Side1.From+o],
			Side2: at(l.side2, block.Side2, o),
			Kind:  ChangedByBothIdentically,
		}, block.Side1.From+o)
	}
	if l.engine.removals {
		for o := 0; o < block.Base.Len; o++ {
			l.add(&Node{Base: l.base[block.Base.From+o], Kind: ChangedByBothIdentically}, -1)
		}
	}
}

// conflict resolves a block both sides changed differently. Items are retried
// one by one when the block lines up with base; otherwise every triple is
// reported as a coarse conflict.
func (l *listDiff) conflict(block diff3.Block) error {
	retry := false
	if block.Base.Valid() {
		switch {
		case block.Side1.Valid() && block.Side2.Valid():
			retry = (block.Base.Len == block.Side1.Len && block.Base.Len == block.Side2.Len) ||
				block.Side1.Len == block.Side2.Len
		case block.Side1.Valid():
			retry = block.Base.Len == block.Side1.Len
		case block.Side2.Valid():
			retry = block.Base.Len == block.Side2.Len
		default:
			retry = true
		}
	}
	if !retry {
		l.engine.log.Debug("Coarse list conflict",
			zap.Int("base_len", block.Base.Len),
			zap.Int("side1_len", block.Side1.Len),
			zap.Int("side2_len", block.Side2.Len),
		)
	}

	c0, c1, c2 := newCursor(block.Base), newCursor(block.Side1), newCursor(block.Side2)
	for c0.active() || c1.active() || c2.active() {
		b, _ := c0.next(l.base)
		s1, side1Index := c1.next(l.side1)
		s2, _ := c2.next(l.side2)

		var node *Node
		if retry {
			var err error
			if node, err = l.engine.diffNode(b, s1, s2); err != nil {
				return err
			}
		} else {
			node = &Node{Base: b, Side1: s1, Side2: s2, Kind: Conflict}
		}
		l.add(node, side1Index)
	}
	return nil
}

// cursor walks one side of a conflict block and stops contributing once it
// runs past the block's range.
type cursor struct {
	index, end int
}

func newCursor(r diff3.Range) *cursor {
	if !r.Valid() {
		return &cursor{index: -1}
	}
	return &cursor{index: r.From, end: r.End()}
}

func (c *cursor) active() bool {
	return c.index >= 0
}

func (c *cursor) next(items []*tree.Node) (*tree.Node, int) {
	if c.index < 0 || c.index >= len(items) {
		c.index = -1
		return nil, -1
	}
	i := c.index
	c.index++
	if c.index >= c.end {
		c.index = -1
	}
	return items[i], i
}

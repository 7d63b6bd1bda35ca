package merge

import "asset-diff/core/tree"

// memoKey identifies a comparison by node identity, not by value.
type memoKey struct {
	a, b *tree.Node
}

// equalityMemo caches structural equality between list items for one list
// alignment. Keys are node identities, so each alignment owns a fresh memo and
// nested lists never clear their parent's entries.
type equalityMemo struct {
	engine *engine
	cache  map[memoKey]bool
}

func newEqualityMemo(e *engine) *equalityMemo {
	return &equalityMemo{
		engine: e,
		cache:  make(map[memoKey]bool),
	}
}

// equal reports whether a and b are structurally identical: the diff of b
// against a, with a on the other side as well, contains no change.
func (m *equalityMemo) equal(a, b *tree.Node) bool {
	key := memoKey{a: a, b: b}
	if result, ok := m.cache[key]; ok {
		return result
	}

	n, err := m.engine.diffNode(a, b, a)
	if err != nil {
		m.engine.fail(err)
		return false
	}

	result := !n.HasDifferences()
	m.cache[key] = result
	return result
}

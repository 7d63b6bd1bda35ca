// Package diff3 aligns three ordered sequences (a base and two derivatives) into
// blocks, the way the diff3 tool aligns the lines of three files.
//
// Each block covers a range of every sequence and is classified as equal in all
// three, changed by side1 only, changed by side2 only, changed identically by
// both, or conflicting. Elements are opaque: equality is supplied by the caller,
// which lets tree nodes be aligned by structural equality.
package diff3

import (
	"znkr.io/diff"
)

// Kind classifies a Block.
type Kind int

const (
	// Equal blocks hold the same elements in all three sequences.
	Equal Kind = iota
	// InsertedBySide1 blocks are unchanged in side2; side1's content wins.
	InsertedBySide1
	// InsertedBySide2 blocks are unchanged in side1; side2's content wins.
	InsertedBySide2
	// InsertedByBoth blocks were changed identically in side1 and side2.
	InsertedByBoth
	// Conflict blocks were changed differently in side1 and side2.
	Conflict
)

var kindNames = map[Kind]string{
	Equal:           "equal",
	InsertedBySide1: "inserted_by_side1",
	InsertedBySide2: "inserted_by_side2",
	InsertedByBoth:  "inserted_by_both",
	Conflict:        "conflict",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Range is a half-open span [From, From+Len) of one sequence.
type Range struct {
	From int
	Len  int
}

// Valid reports whether the range contributes at least one element.
func (r Range) Valid() bool {
	return r.Len > 0
}

// End returns the index just past the range.
func (r Range) End() int {
	return r.From + r.Len
}

// Block is one aligned region of the three sequences.
type Block struct {
	Kind  Kind
	Base  Range
	Side1 Range
	Side2 Range
}

// Align computes the diff3 alignment of base, side1 and side2 using eq as the
// element equality. Blocks are returned in sequence order and together cover
// every element of all three inputs exactly once.
func Align[T any](base, side1, side2 []T, eq func(a, b T) bool) []Block {
	m1 := matches(base, side1, eq)
	m2 := matches(base, side2, eq)

	var blocks []Block
	i, j, k := 0, 0, 0
	for {
		// Stable run: base elements matched to the current positions of both sides.
		n := 0
		for i+n < len(base) && m1[i+n] == j+n && m2[i+n] == k+n {
			n++
		}
		if n > 0 {
			blocks = appendBlock(blocks, Block{
				Kind:  Equal,
				Base:  Range{From: i, Len: n},
				Side1: Range{From: j, Len: n},
				Side2: Range{From: k, Len: n},
			})
			i, j, k = i+n, j+n, k+n
			continue
		}

		// Unstable chunk: runs up to the next base element matched on both sides.
		b := i
		for b < len(base) && (m1[b] < 0 || m2[b] < 0) {
			b++
		}
		end1, end2 := len(side1), len(side2)
		if b < len(base) {
			end1, end2 = m1[b], m2[b]
		}

		chunk := Block{
			Base:  Range{From: i, Len: b - i},
			Side1: Range{From: j, Len: end1 - j},
			Side2: Range{From: k, Len: end2 - k},
		}
		if chunk.Base.Valid() || chunk.Side1.Valid() || chunk.Side2.Valid() {
			chunk.Kind = classify(base, side1, side2, chunk, eq)
			blocks = appendBlock(blocks, chunk)
		}

		if b >= len(base) {
			return blocks
		}
		i, j, k = b, end1, end2
	}
}

// matches returns, for every index of a, the index of the element of b it is
// aligned with, or -1.
func matches[T any](a, b []T, eq func(x, y T) bool) []int {
	m := make([]int, len(a))
	for i := range m {
		m[i] = -1
	}

	x, y := 0, 0
	for _, edit := range diff.EditsFunc(a, b, eq, diff.Minimal()) {
		switch edit.Op {
		case diff.Match:
			m[x] = y
			x++
			y++
		case diff.Delete:
			x++
		case diff.Insert:
			y++
		}
	}
	return m
}

func classify[T any](base, side1, side2 []T, c Block, eq func(a, b T) bool) Kind {
	same1 := sameRange(base, c.Base, side1, c.Side1, eq)
	same2 := sameRange(base, c.Base, side2, c.Side2, eq)
	switch {
	case same1 && same2:
		return Equal
	case same1:
		return InsertedBySide2
	case same2:
		return InsertedBySide1
	case sameRange(side1, c.Side1, side2, c.Side2, eq):
		return InsertedByBoth
	default:
		return Conflict
	}
}

func sameRange[T any](a []T, ra Range, b []T, rb Range, eq func(x, y T) bool) bool {
	if ra.Len != rb.Len {
		return false
	}
	for n := 0; n < ra.Len; n++ {
		if !eq(a[ra.From+n], b[rb.From+n]) {
			return false
		}
	}
	return true
}

// appendBlock merges adjacent equal blocks so callers see maximal runs.
func appendBlock(blocks []Block, b Block) []Block {
	if n := len(blocks); n > 0 && b.Kind == Equal && blocks[n-1].Kind == Equal {
		last := &blocks[n-1]
		if last.Base.End() == b.Base.From && last.Side1.End() == b.Side1.From && last.Side2.End() == b.Side2.From {
			last.Base.Len += b.Base.Len
			last.Side1.Len += b.Side1.Len
			last.Side2.Len += b.Side2.Len
			return blocks
		}
	}
	return append(blocks, b)
}

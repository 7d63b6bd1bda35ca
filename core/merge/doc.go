// Package merge computes three-way structural diffs over trees built by package
// tree.
//
// Given a base tree and two independently modified derivatives (side1 and
// side2), the engine produces a merge tree in which every node mirrors up to
// three input nodes and carries a ChangeKind: unchanged, changed by one side,
// changed identically by both, conflicting, or one of the structural conflict
// kinds (type mismatch, type conflict, array size conflict).
//
// # Architecture
//
// A single recursive entry point reconciles each triple of input nodes:
//
// 1. Type resolution: the first present side (base, then side1, then side2)
// sets the reference shape and effective type. A differing shape yields
// TypeMismatch, a differing type of the same shape yields TypeConflict.
//
// 2. Leaf values are classified by the scalar comparator. A present null
// against a composite on another side is classified the same way, comparing
// whole values, without descending into the composite.
//
// 3. Composite values have their members reconciled positionally, then their
// container body is reconciled by the matching strategy: arrays positionally
// (SizeConflict on length disagreement), lists through a diff3 alignment of
// their items, maps through a per-key presence table. Items inserted into a
// list by one or both sides are reported as flat nodes holding only the
// contributing sides; WithRemovals also reports the base items they replace.
//
// Structural conflicts are data recorded in the tree. Contract violations in
// the input trees (member count disagreement, nil children) are returned as
// errors wrapping ErrMemberCount or ErrNilChild.
//
// # Usage
//
//	root, err := merge.Compute(baseTree, side1Tree, side2Tree)
//	if err != nil {
//	    return err
//	}
//	for _, d := range root.Differences() {
//	    fmt.Println(d.Path, d.Node.Kind)
//	}
//
//	// Build an action plan from the merge tree
//	plan := merge.BuildPlan(root)
//	if !plan.Mergeable() {
//	    // conflicts need a decision
//	}
package merge

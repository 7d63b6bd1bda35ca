package merge

import (
	"strconv"
	"strings"

	"asset-diff/core/tree"
)

// ActionType represents how a difference is resolved when merging.
type ActionType string

const (
	// ActionTakeSide1 applies side1's value.
	ActionTakeSide1 ActionType = "take_side1"
	// ActionTakeSide2 applies side2's value.
	ActionTakeSide2 ActionType = "take_side2"
	// ActionTakeEither applies the value both sides agree on.
	ActionTakeEither ActionType = "take_either"
	// ActionManual needs a human decision.
	ActionManual ActionType = "manual"
)

// Action represents the planned resolution of one difference.
type Action struct {
	// Type specifies the resolution.
	Type ActionType `json:"type"`

	// Path locates the node in the merge tree.
	Path string `json:"path"`

	// Kind is the change kind the action was derived from.
	Kind ChangeKind `json:"kind"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains the differences of a merge tree and their planned resolutions.
type Plan struct {
	// Actions contains one action per difference, in tree order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a merge plan.
type PlanSummary struct {
	// TotalDifferences is the number of nodes whose own kind is a change.
	TotalDifferences int `json:"total_differences"`

	// ChangedBySide1 counts nodes changed by side1 only.
	ChangedBySide1 int `json:"changed_by_side1"`

	// ChangedBySide2 counts nodes changed by side2 only.
	ChangedBySide2 int `json:"changed_by_side2"`

	// ChangedByBoth counts nodes changed identically by both sides.
	ChangedByBoth int `json:"changed_by_both"`

	// Conflicts counts value conflicts.
	Conflicts int `json:"conflicts"`

	// TypeMismatches counts nodes whose shape differs between sides.
	TypeMismatches int `json:"type_mismatches"`

	// TypeConflicts counts nodes whose type differs between sides.
	TypeConflicts int `json:"type_conflicts"`

	// SizeConflicts counts arrays whose length differs between sides.
	SizeConflicts int `json:"size_conflicts"`
}

// Unresolved returns the number of differences that need a manual decision.
func (s PlanSummary) Unresolved() int {
	return s.Conflicts + s.TypeMismatches + s.TypeConflicts + s.SizeConflicts
}

// Mergeable reports whether every difference can be resolved automatically.
func (p *Plan) Mergeable() bool {
	return p.Summary.Unresolved() == 0
}

// BuildPlan generates a summary and action plan from a merge tree.
func BuildPlan(root *Node) *Plan {
	plan := &Plan{Actions: []Action{}}

	for _, d := range root.Differences() {
		plan.Summary.TotalDifferences++

		action := Action{Path: d.Path.String(), Kind: d.Node.Kind}
		switch d.Node.Kind {
		case ChangedBySide1:
			plan.Summary.ChangedBySide1++
			action.Type = ActionTakeSide1
			action.Reason = "changed by side1 only"
		case ChangedBySide2:
			plan.Summary.ChangedBySide2++
			action.Type = ActionTakeSide2
			action.Reason = "changed by side2 only"
		case ChangedByBothIdentically:
			plan.Summary.ChangedByBoth++
			action.Type = ActionTakeEither
			action.Reason = "changed identically by both sides"
		case Conflict:
			plan.Summary.Conflicts++
			action.Type = ActionManual
			action.Reason = "changed differently by both sides"
		case TypeMismatch:
			plan.Summary.TypeMismatches++
			action.Type = ActionManual
			action.Reason = "value shape differs between sides"
		case TypeConflict:
			plan.Summary.TypeConflicts++
			action.Type = ActionManual
			action.Reason = "type differs between sides: " + describeSides(d.Node, func(t *tree.Node) string {
				return t.EffectiveType().String()
			})
		case SizeConflict:
			plan.Summary.SizeConflicts++
			action.Type = ActionManual
			action.Reason = "array length differs between sides: " + describeSides(d.Node, func(t *tree.Node) string {
				return strconv.Itoa(len(t.Items))
			})
		}
		plan.Actions = append(plan.Actions, action)
	}

	return plan
}

// describeSides formats one value per typed side as "base=... side1=...".
func describeSides(n *Node, describe func(*tree.Node) string) string {
	var parts []string
	for _, side := range []struct {
		name string
		node *tree.Node
	}{{"base", n.Base}, {"side1", n.Side1}, {"side2", n.Side2}} {
		if side.node.EffectiveType() == nil {
			continue
		}
		parts = append(parts, side.name+"="+describe(side.node))
	}
	return strings.Join(parts, " ")
}

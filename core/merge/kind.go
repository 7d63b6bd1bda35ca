package merge

import "fmt"

// ChangeKind classifies a merge node. It is assigned once per node.
type ChangeKind int

const (
	// Unchanged nodes are equal on all present sides.
	Unchanged ChangeKind = iota
	// ChangedBySide1 nodes were modified by side1 only.
	ChangedBySide1
	// ChangedBySide2 nodes were modified by side2 only.
	ChangedBySide2
	// ChangedByBothIdentically nodes were modified the same way by both sides.
	ChangedByBothIdentically
	// Conflict nodes were modified differently by both sides.
	Conflict
	// HasChangedChildren nodes are equal themselves but have a changed descendant.
	HasChangedChildren
	// TypeMismatch nodes have a different runtime shape on some side.
	TypeMismatch
	// TypeConflict nodes have the same shape but a different type on some side.
	TypeConflict
	// SizeConflict nodes are arrays whose length differs between sides.
	SizeConflict
)

var changeKindNames = []string{
	Unchanged:                "unchanged",
	ChangedBySide1:           "changed_by_side1",
	ChangedBySide2:           "changed_by_side2",
	ChangedByBothIdentically: "changed_by_both",
	Conflict:                 "conflict",
	HasChangedChildren:       "has_changed_children",
	TypeMismatch:             "type_mismatch",
	TypeConflict:             "type_conflict",
	SizeConflict:             "size_conflict",
}

func (k ChangeKind) String() string {
	if k >= 0 && int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// IsConflict reports whether the kind needs a decision before merging.
func (k ChangeKind) IsConflict() bool {
	switch k {
	case Conflict, TypeMismatch, TypeConflict, SizeConflict:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ChangeKind) UnmarshalText(text []byte) error {
	for i, name := range changeKindNames {
		if name == string(text) {
			*k = ChangeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown change kind %q", text)
}

package tree

// Kind is the declared category of a Type.
type Kind int

const (
	// KindScalar is a leaf value (numbers, strings, booleans, opaque values).
	KindScalar Kind = iota
	// KindObject is a composite value with declared member slots.
	KindObject
	// KindArray is a fixed-length indexed sequence.
	KindArray
	// KindList is a variable-length ordered sequence.
	KindList
	// KindMap is a key-addressed collection.
	KindMap
)

var kindNames = map[Kind]string{
	KindScalar: "scalar",
	KindObject: "object",
	KindArray:  "array",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Type describes the declared type of a node.
type Type struct {
	// Name identifies the type (e.g., "int", "main.Material", "scalar").
	Name string `json:"name"`

	// Kind is the declared category of the type.
	Kind Kind `json:"kind"`

	// Optional marks a nullable wrapper around Elem.
	Optional bool `json:"optional,omitempty"`

	// Elem is the wrapped type when Optional is set.
	Elem *Type `json:"elem,omitempty"`
}

// Effective unwraps optional wrappers down to the underlying type.
func (t *Type) Effective() *Type {
	for t != nil && t.Optional && t.Elem != nil {
		t = t.Elem
	}
	return t
}

// Equal reports whether two types are identical after unwrapping optionals.
func (t *Type) Equal(other *Type) bool {
	a, b := t.Effective(), other.Effective()
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && a.Kind == b.Kind
}

func (t *Type) String() string {
	if t == nil {
		return "<none>"
	}
	if t.Optional && t.Elem != nil {
		return "?" + t.Elem.String()
	}
	return t.Name
}

// Shape is the runtime classification of a node.
type Shape int

const (
	ShapeAbsent Shape = iota
	ShapeScalar
	ShapeObject
	ShapeArray
	ShapeList
	ShapeMap
)

var shapeNames = map[Shape]string{
	ShapeAbsent: "absent",
	ShapeScalar: "scalar",
	ShapeObject: "object",
	ShapeArray:  "array",
	ShapeList:   "list",
	ShapeMap:    "map",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsContainer reports whether the shape holds Items.
func (s Shape) IsContainer() bool {
	return s == ShapeArray || s == ShapeList || s == ShapeMap
}

// Node is one value on one side of a comparison.
type Node struct {
	// Instance is the wrapped value. It may be nil for null values.
	Instance any

	// Type is the declared type of the value.
	Type *Type

	// HasMembers distinguishes composite objects from scalar-like values.
	HasMembers bool

	// Members are the object's slots in declaration order.
	Members []*Node

	// Items are the elements of an array or list, or the entries of a map.
	Items []*Node

	// Key identifies a map entry. It is only set on map items.
	Key any

	// Name is the member slot name. It is only set on members.
	Name string

	// Index is the position of the node within its parent's Members or Items.
	Index int
}

// EffectiveType returns the declared type with optional wrappers removed.
func (n *Node) EffectiveType() *Type {
	if n == nil {
		return nil
	}
	return n.Type.Effective()
}

// Shape classifies the node from its declared type and HasMembers.
func (n *Node) Shape() Shape {
	if n == nil {
		return ShapeAbsent
	}
	t := n.EffectiveType()
	if t == nil {
		return ShapeScalar
	}
	switch t.Kind {
	case KindArray:
		return ShapeArray
	case KindList:
		return ShapeList
	case KindMap:
		return ShapeMap
	case KindObject:
		return ShapeObject
	default:
		if n.HasMembers {
			return ShapeObject
		}
		return ShapeScalar
	}
}

// IsComparable reports whether the node is compared as a leaf value: it has no
// members and is not a container.
func (n *Node) IsComparable() bool {
	return n != nil && !n.HasMembers && !n.Shape().IsContainer()
}

// IsNull reports whether the node is a present null: a value without a type,
// such as a YAML null, or a nil optional.
func (n *Node) IsNull() bool {
	return n != nil && (n.EffectiveType() == nil || (n.Type.Optional && n.Instance == nil))
}

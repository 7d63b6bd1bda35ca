package merge

import (
	"math"
	"strconv"

	"asset-diff/core/tree"

	"github.com/goccy/go-json"
)

// nodeView is the serialized form of a Node. Side values are only emitted for
// leaves; composite values are described by their children.
type nodeView struct {
	Kind    ChangeKind `json:"kind"`
	Type    string     `json:"type,omitempty"`
	Name    string     `json:"name,omitempty"`
	Key     any        `json:"key,omitempty"`
	Base    *sideView  `json:"base,omitempty"`
	Side1   *sideView  `json:"side1,omitempty"`
	Side2   *sideView  `json:"side2,omitempty"`
	Members []*Node    `json:"members,omitempty"`
	Items   []*Node    `json:"items,omitempty"`
}

// sideView distinguishes a present null from an absent side.
type sideView struct {
	Value any `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	view := nodeView{
		Kind:    n.Kind,
		Name:    n.Name,
		Key:     n.Key,
		Members: n.Members,
		Items:   n.Items,
	}
	if n.Type != nil {
		view.Type = n.Type.String()
	}
	if len(n.Members) == 0 && len(n.Items) == 0 {
		view.Base = leaf(n.Base)
		view.Side1 = leaf(n.Side1)
		view.Side2 = leaf(n.Side2)
	}
	return json.Marshal(view)
}

func leaf(n *tree.Node) *sideView {
	if n == nil || n.HasMembers || n.Shape().IsContainer() {
		return nil
	}
	return &sideView{Value: jsonValue(n.Instance)}
}

// jsonValue renders non-finite floats as strings, which JSON cannot carry.
func jsonValue(v any) any {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	case float32:
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
	}
	return v
}

package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document node types. Scalars share one type so that a value changing from a
// number to a string is a value change, not a type conflict.
var (
	DocumentScalar = &Type{Name: "scalar", Kind: KindScalar}
	DocumentList   = &Type{Name: "list", Kind: KindList}
	DocumentMap    = &Type{Name: "map", Kind: KindMap}
)

// FromYAML parses a YAML (or JSON) document and builds its tree.
//
// Mappings become maps keyed by the decoded key, sequences become lists and
// scalars carry their decoded value. Null values carry no type and take no
// part in type resolution. An empty document yields a null node.
func FromYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Node{}, nil
	}
	return FromYAMLNode(doc.Content[0])
}

// FromYAMLNode builds a tree from an already parsed yaml.Node.
func FromYAMLNode(n *yaml.Node) (*Node, error) {
	return buildYAML(n, 0)
}

const maxAliasDepth = 64

func buildYAML(n *yaml.Node, depth int) (*Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Node{}, nil
		}
		return buildYAML(n.Content[0], depth)

	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return nil, fmt.Errorf("%w: alias nesting exceeds %d at line %d", ErrCycle, maxAliasDepth, n.Line)
		}
		return buildYAML(n.Alias, depth+1)

	case yaml.SequenceNode:
		node := &Node{Type: DocumentList}
		for i, child := range n.Content {
			item, err := buildYAML(child, depth)
			if err != nil {
				return nil, err
			}
			item.Index = i
			node.Items = append(node.Items, item)
		}
		return node, nil

	case yaml.MappingNode:
		node := &Node{Type: DocumentMap}
		if len(n.Content)%2 != 0 {
			return nil, fmt.Errorf("malformed mapping at line %d", n.Line)
		}
		seen := make(map[any]struct{}, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			var key any
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("failed to decode key at line %d: %w", n.Content[i].Line, err)
			}
			if !isHashable(key) {
				return nil, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrUnsupportedKind, n.Content[i].Line)
			}
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("duplicate key %v at line %d", key, n.Content[i].Line)
			}
			seen[key] = struct{}{}

			item, err := buildYAML(n.Content[i+1], depth)
			if err != nil {
				return nil, err
			}
			item.Key = key
			item.Index = len(node.Items)
			node.Items = append(node.Items, item)
		}
		return node, nil

	case yaml.ScalarNode:
		var value any
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode scalar at line %d: %w", n.Line, err)
		}
		if value == nil {
			return &Node{}, nil
		}
		return &Node{Type: DocumentScalar, Instance: value}, nil
	}

	return nil, fmt.Errorf("%w: yaml node kind %d", ErrUnsupportedKind, n.Kind)
}

func isHashable(v any) bool {
	switch v.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return true
	default:
		return false
	}
}

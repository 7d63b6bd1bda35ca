// Package tree defines the input node model consumed by the merge engine.
//
// A Node represents one value on one side of a three-way comparison (base, side1
// or side2). Nodes are immutable once built and carry just enough structure for
// the engine to classify them: a declared Type, an optional set of positional
// Members (object fields) and an optional list of Items (array elements, list
// elements or map entries).
//
// # Shapes
//
// Every node has exactly one Shape, derived from its effective type:
//
//   - ShapeScalar: leaf values compared by structural equality
//   - ShapeObject: composite values with positional member slots
//   - ShapeArray: fixed-length indexed sequences
//   - ShapeList: variable-length ordered sequences (insert/delete semantics)
//   - ShapeMap: key-addressed unordered entries
//
// # Builders
//
// Two builders are provided:
//
//	// From arbitrary Go values (reflection)
//	node, err := tree.FromValue(asset)
//
//	// From YAML or JSON documents
//	node, err := tree.FromYAML(data)
//
// Both guarantee that equal logical structures produce comparable node shapes
// (same member order, same classification rules).
package tree

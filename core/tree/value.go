package tree

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	// ErrCycle is returned when a value references itself through a pointer.
	ErrCycle = errors.New("cyclic value")

	// ErrUnsupportedKind is returned for values that cannot be represented as a tree
	// (functions, channels, unsafe pointers).
	ErrUnsupportedKind = errors.New("unsupported kind")
)

// FromValue builds a tree from an arbitrary Go value.
//
// Structs become objects (exported fields, in declaration order), arrays become
// arrays, slices become lists, maps become maps (entries sorted by formatted key)
// and pointers become optional wrappers. Structs without exported fields, such
// as time.Time, are treated as scalars.
func FromValue(v any) (*Node, error) {
	b := &valueBuilder{
		types:   make(map[reflect.Type]*Type),
		visited: make(map[uintptr]struct{}),
	}
	if v == nil {
		return &Node{}, nil
	}
	return b.build(reflect.ValueOf(v), reflect.TypeOf(v))
}

type valueBuilder struct {
	types   map[reflect.Type]*Type
	visited map[uintptr]struct{}
}

func (b *valueBuilder) typeOf(rt reflect.Type) (*Type, error) {
	if t, ok := b.types[rt]; ok {
		return t, nil
	}

	var t *Type
	switch rt.Kind() {
	case reflect.Pointer:
		elem, err := b.typeOf(rt.Elem())
		if err != nil {
			return nil, err
		}
		t = &Type{Name: rt.String(), Kind: elem.Kind, Optional: true, Elem: elem}
	case reflect.Struct:
		if exportedFields(rt) == 0 {
			t = &Type{Name: rt.String(), Kind: KindScalar}
		} else {
			t = &Type{Name: rt.String(), Kind: KindObject}
		}
	case reflect.Array:
		t = &Type{Name: rt.String(), Kind: KindArray}
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			t = &Type{Name: rt.String(), Kind: KindScalar}
		} else {
			t = &Type{Name: rt.String(), Kind: KindList}
		}
	case reflect.Map:
		t = &Type{Name: rt.String(), Kind: KindMap}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, rt)
	default:
		t = &Type{Name: rt.String(), Kind: KindScalar}
	}

	b.types[rt] = t
	return t, nil
}

// build creates the node for v, whose static type is rt. rt differs from
// v.Type() only for interface-typed slots.
func (b *valueBuilder) build(v reflect.Value, rt reflect.Type) (*Node, error) {
	if rt.Kind() == reflect.Interface {
		if !v.IsValid() || v.IsNil() {
			// An empty interface carries no type to reconcile against.
			return &Node{}, nil
		}
		v = v.Elem()
		rt = v.Type()
	}

	t, err := b.typeOf(rt)
	if err != nil {
		return nil, err
	}

	if rt.Kind() == reflect.Pointer {
		if v.IsNil() {
			return &Node{Type: t}, nil
		}
		addr := v.Pointer()
		if _, seen := b.visited[addr]; seen {
			return nil, fmt.Errorf("%w: %s", ErrCycle, rt)
		}
		b.visited[addr] = struct{}{}
		defer delete(b.visited, addr)

		node, err := b.build(v.Elem(), rt.Elem())
		if err != nil {
			return nil, err
		}
		node.Type = t
		return node, nil
	}

	node := &Node{Type: t}
	if v.CanInterface() {
		node.Instance = v.Interface()
	}

	switch t.Kind {
	case KindObject:
		node.HasMembers = true
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			member, err := b.build(v.Field(i), field.Type)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", rt, field.Name, err)
			}
			member.Name = field.Name
			member.Index = len(node.Members)
			node.Members = append(node.Members, member)
		}
	case KindArray, KindList:
		if rt.Kind() == reflect.Slice && v.IsNil() {
			break
		}
		for i := 0; i < v.Len(); i++ {
			item, err := b.build(v.Index(i), rt.Elem())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			item.Index = i
			node.Items = append(node.Items, item)
		}
	case KindMap:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for i, key := range keys {
			item, err := b.build(v.MapIndex(key), rt.Elem())
			if err != nil {
				return nil, fmt.Errorf("[%v]: %w", key.Interface(), err)
			}
			item.Key = key.Interface()
			item.Index = i
			node.Items = append(node.Items, item)
		}
	}

	return node, nil
}

func exportedFields(rt reflect.Type) int {
	count := 0
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			count++
		}
	}
	return count
}

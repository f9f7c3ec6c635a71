package node

import (
	"fmt"
	"reflect"
	"slices"
)

// FromAny converts a plain Go value into a tree. Maps become mappings with
// their keys in sorted order (Go maps carry no order), slices and arrays become
// sequences, and everything else becomes a scalar.
func FromAny(v any) *Node {
	switch val := v.(type) {
	case *Node:
		return val.Clone()
	case map[string]any:
		m := NewMapping()
		for _, k := range sortedKeys(val) {
			m.Set(k, FromAny(val[k]))
		}
		return m
	case []any:
		s := NewSequence()
		for _, item := range val {
			s.Append(FromAny(item))
		}
		return s
	case nil:
		return NewScalar(nil)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		m := NewMapping()
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		slices.Sort(keys)
		for _, k := range keys {
			m.Set(k, FromAny(byKey[k].Interface()))
		}
		return m
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return NewScalar(string(rv.Bytes()))
		}
		s := NewSequence()
		for i := range rv.Len() {
			s.Append(FromAny(rv.Index(i).Interface()))
		}
		return s
	case reflect.Pointer:
		if rv.IsNil() {
			return NewScalar(nil)
		}
		return FromAny(rv.Elem().Interface())
	default:
		return NewScalar(v)
	}
}

// ToAny converts the tree back into plain Go values: map[string]any, []any and
// scalar values.
func (n *Node) ToAny() any {
	if n == nil {
		return nil
	}
	switch n.kind {
	case MappingKind:
		out := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			out[k] = n.values[k].ToAny()
		}
		return out
	case SequenceKind:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.ToAny()
		}
		return out
	default:
		return n.value
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

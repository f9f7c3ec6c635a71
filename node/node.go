package node

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cast"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	// MappingKind is an ordered string-keyed mapping.
	MappingKind Kind = iota + 1
	// SequenceKind is an ordered list of nodes.
	SequenceKind
	// ScalarKind is a single string, int64, float64, bool or nil value.
	ScalarKind
)

// String returns the lowercase name of the kind, as used in error messages.
func (k Kind) String() string {
	switch k {
	case MappingKind:
		return "mapping"
	case SequenceKind:
		return "sequence"
	case ScalarKind:
		return "scalar"
	default:
		return "unknown"
	}
}

// Node is one value of a raw fragment tree.
type Node struct {
	kind Kind

	// mapping
	keys   []string
	values map[string]*Node

	// sequence
	items []*Node

	// scalar
	value any
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{kind: MappingKind, values: make(map[string]*Node)}
}

// NewSequence returns a sequence node holding items.
func NewSequence(items ...*Node) *Node {
	return &Node{kind: SequenceKind, items: slices.Clone(items)}
}

// NewScalar returns a scalar node for v. Integer types are widened to int64
// and float32 to float64; time values become RFC 3339 strings. Any other
// non-scalar type is stored in its string form.
func NewScalar(v any) *Node {
	return &Node{kind: ScalarKind, value: normalizeScalar(v)}
}

func normalizeScalar(v any) any {
	switch val := v.(type) {
	case nil, string, int64, float64, bool:
		return val
	case int, int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return s
	}
}

// Kind returns the variant held by n.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsMapping reports whether n is a non-nil mapping.
func (n *Node) IsMapping() bool {
	return n != nil && n.kind == MappingKind
}

// IsSequence reports whether n is a non-nil sequence.
func (n *Node) IsSequence() bool {
	return n != nil && n.kind == SequenceKind
}

// IsScalar reports whether n is a non-nil scalar.
func (n *Node) IsScalar() bool {
	return n != nil && n.kind == ScalarKind
}

// KindName returns the kind of n for error messages, "null" for a nil node.
func KindName(n *Node) string {
	if n == nil {
		return "null"
	}
	return n.kind.String()
}

// Value returns the scalar value of n, or nil for non-scalars.
func (n *Node) Value() any {
	if !n.IsScalar() {
		return nil
	}
	return n.value
}

// StringValue returns the value of a string scalar.
func (n *Node) StringValue() (string, bool) {
	if !n.IsScalar() {
		return "", false
	}
	s, ok := n.value.(string)
	return s, ok
}

// Keys returns the mapping keys in insertion order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	return slices.Clone(n.keys)
}

// Items returns the sequence items.
func (n *Node) Items() []*Node {
	if !n.IsSequence() {
		return nil
	}
	return slices.Clone(n.items)
}

// Len returns the number of keys of a mapping or items of a sequence.
// Scalars have length 0.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case MappingKind:
		return len(n.keys)
	case SequenceKind:
		return len(n.items)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsMapping() {
		return nil, false
	}
	v, ok := n.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended after the existing keys;
// an existing key keeps its position. Set panics if n is not a mapping.
func (n *Node) Set(key string, value *Node) {
	if !n.IsMapping() {
		panic(fmt.Sprintf("node: Set on %s", KindName(n)))
	}
	if _, exists := n.values[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
}

// Delete removes key from a mapping and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if !n.IsMapping() {
		return false
	}
	if _, exists := n.values[key]; !exists {
		return false
	}
	delete(n.values, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
	return true
}

// Append adds items to the end of a sequence. Append panics if n is not a
// sequence.
func (n *Node) Append(items ...*Node) {
	if !n.IsSequence() {
		panic(fmt.Sprintf("node: Append on %s", KindName(n)))
	}
	n.items = append(n.items, items...)
}

// Lookup follows path through nested mappings and returns the node found.
// An empty path returns n itself.
func (n *Node) Lookup(path []string) (*Node, bool) {
	cur := n
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case MappingKind:
		out := &Node{
			kind:   MappingKind,
			keys:   slices.Clone(n.keys),
			values: make(map[string]*Node, len(n.values)),
		}
		for k, v := range n.values {
			out.values[k] = v.Clone()
		}
		return out
	case SequenceKind:
		out := &Node{kind: SequenceKind, items: make([]*Node, len(n.items))}
		for i, item := range n.items {
			out.items[i] = item.Clone()
		}
		return out
	default:
		return &Node{kind: n.kind, value: n.value}
	}
}

// Equal reports whether n and other hold the same data. Sequences compare
// item by item; mappings compare by key regardless of key order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case MappingKind:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for k, v := range n.values {
			ov, ok := other.values[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case SequenceKind:
		return slices.EqualFunc(n.items, other.items, (*Node).Equal)
	default:
		return n.value == other.value
	}
}

// Walk calls fn for every node of the tree in depth-first order, mapping
// values in key order. path holds the keys (or "[i]" indexes) leading to the
// node. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(path []string, n *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func(path []string, n *Node) bool) {
	if n == nil || !fn(path, n) {
		return
	}
	switch n.kind {
	case MappingKind:
		for _, k := range n.keys {
			n.values[k].walk(append(slices.Clip(path), k), fn)
		}
	case SequenceKind:
		for i, item := range n.items {
			item.walk(append(slices.Clip(path), fmt.Sprintf("[%d]", i)), fn)
		}
	}
}

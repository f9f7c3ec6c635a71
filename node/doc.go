// Package node provides the raw, format-independent tree that documentation
// fragments are decoded into before any typed processing.
//
// A [Node] is a tagged variant: a [MappingKind] node holds string keys in
// insertion order, a [SequenceKind] node holds items, and a [ScalarKind] node
// holds a string, int64, float64, bool or nil value. Key order is preserved so
// that later stages can honour the order in which a user wrote versions,
// categories and methods.
//
// Nodes are mutable, but every pipeline stage that transforms a tree works on a
// [Node.Clone] so that its inputs are never modified.
//
// # Conversion
//
// Trees are built from YAML/JSON through [FromYAML], which walks a yaml.Node and
// keeps source order, or from plain Go values through [FromAny]. [Node.ToAny]
// and [Node.ToYAML] convert back, and [Node.MarshalJSON] writes mappings in key
// order.
//
//	var doc yaml.Node
//	if err := yaml.Unmarshal(data, &doc); err != nil {
//	    return err
//	}
//	tree, err := node.FromYAML(&doc)
package node

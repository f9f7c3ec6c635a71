// Package extender resolves "extends" references inside a merged documentation tree.
//
// A mapping found at one of the extend patterns may name one or more bases
// under its extends key. The extended mapping is the deep merge of its bases,
// in order, with its own keys laid on top:
//
//	versions:
//	  v1:
//	    methods:
//	      list: {uri: /items, code: 200}
//	      search: {extends: list, uri: /items/search}
//	  v2:
//	    extends: v1
//	    label: Version 2
//
// # Patterns
//
// Patterns are slash-separated keys where "?" matches any key. [DefaultPaths]
// lists the patterns used when building documentation. Patterns are applied in
// order and the matches of a pattern in mapping order. A base that itself
// extends is resolved first.
//
// # References
//
// Under a pattern with n wildcards, a reference of k segments (k ≤ n) replaces
// the keys bound to the last k wildcards of the current match. Under
// versions/?/methods/?, "list" names a method of the same version and
// "v1/list" the method list of version v1. A reference starting with "/" is an
// absolute path from the root, such as "/versions/v1/methods/list".
//
// # Removal
//
// After every pattern is applied, matched mappings whose removed key is true
// are deleted. This lets a version drop a method it inherited, or an abstract
// base exist only to be extended. A base's own removed flag is not inherited
// by the mappings that extend it.
//
// # Errors
//
// A reference to a missing key fails with [docerrors.ReferenceError], a base
// that is not a mapping or an extends value that is neither a string nor a list
// of strings with [docerrors.StructureError], and a chain that refers back to
// itself with [docerrors.CycleError].
package extender

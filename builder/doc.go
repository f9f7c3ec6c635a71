// Package builder turns a merged documentation tree into the typed object
// graph of the model package.
//
// # Tree layout
//
// The tree must hold a "versions" mapping and may hold a global "categories"
// catalogue. Each version may hold "methods", "categories", "types" and
// "references" scopes:
//
//	categories:
//	  users: {order: 1, label: User management}
//	versions:
//	  v1:
//	    label: Version 1
//	    methods:
//	      list_users: {uri: /users, category: users}
//	      create_user: {method: post, uri: /users, code: 201, category: users}
//
// Every entity takes its Name from its mapping key. Other attributes are
// decoded weakly typed, so "order: '3'" and "display: 'false'" are accepted.
// When no label is set it is the title-cased name ("list_users" becomes
// "List Users"). Categories default to order [model.DefaultCategoryOrder];
// methods default to GET and 200. Unknown attributes are ignored, and a null
// entity or scope counts as empty.
//
// # Categories
//
// Methods refer to categories by name only; the name is not checked against
// the catalogues unless strict references are enabled:
//
//	root, err := builder.BuildWithOptions(
//	    builder.WithTree(tree),
//	    builder.WithStrictReferences(true),
//	)
//
// # Errors
//
// A missing "versions" key, or a scope or entity that is not a mapping, fails
// with a [docerrors.StructureError] naming the offending path. With strict
// references, a method naming a category found in neither its version's nor
// the global catalogue fails with a [docerrors.ReferenceError].
package builder

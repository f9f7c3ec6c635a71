// Package apidoc builds API documentation from fragments written in YAML,
// JSON or TOML.
//
// A documentation set is a tree of versions, each declaring methods, types,
// references and categories. The tree is usually split across many fragment
// files: apidoc merges them, lets entities inherit from one another through
// extends references, substitutes ${name} placeholders, builds a typed object
// graph, hides what the filters exclude and hands out an ordered view ready
// for rendering.
//
// # Installation
//
//	go get github.com/lucasvieiramay/apidoc
//
// # Quick Start
//
// Build from a configuration file:
//
//	import (
//		"github.com/lucasvieiramay/apidoc/config"
//		"github.com/lucasvieiramay/apidoc/source"
//	)
//
//	cfg, err := config.Load("apidoc.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	view, err := source.New().CreateFromConfig(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range view.Categories() {
//		fmt.Println(c.Label)
//		for _, m := range c.Methods {
//			fmt.Println("  ", m.Name, m.Versions())
//		}
//	}
//
// Or with functional options:
//
//	result, err := source.BuildWithOptions(
//		source.WithConfigFile("apidoc.yaml"),
//		source.WithStrictReferences(true),
//	)
//
// # Fragments
//
// A fragment is a mapping. Its top-level keys are versions and categories:
//
//	categories:
//	  users: {order: 1, label: User accounts}
//	versions:
//	  v1:
//	    methods:
//	      list_users: {uri: "${base}/users", category: users}
//	  v2:
//	    extends: v1
//	    methods:
//	      get_user: {extends: list_users, uri: "${base}/users/{id}"}
//
// # Pipeline
//
// The stages live in their own packages and can be used on their own:
//
//   - loader: read fragment files into order-preserving trees
//   - merger: deep-merge trees, later fragments winning
//   - extender: resolve extends references and drop removed entities
//   - argument: substitute ${name} placeholders in string values
//   - builder: build the model object graph from the tree
//   - filter: hide and prune versions and categories
//   - dto: the ordered, grouped view of the graph
//   - source: run all of the above from a config.Config
//
// # Errors
//
// Stages report typed errors from the docerrors package (StructureError,
// ReferenceError, CycleError, ParseError, ConfigError). Match them with
// errors.Is against the docerrors sentinels, or errors.As for details.
//
// # Command Line
//
// The apidoc command (cmd/apidoc) runs the pipeline (apidoc build), prints
// the merged tree (apidoc merge) and serves both as MCP tools over stdio
// (apidoc mcp). Global settings are also read from APIDOC_* environment
// variables.
package apidoc

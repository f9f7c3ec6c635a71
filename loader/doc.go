// Package loader reads documentation fragments from files and directories.
//
// A fragment is a YAML, JSON or TOML document whose top level is a mapping.
// Fragments are decoded into [node.Node] trees that keep the key order of the
// source file, so that versions and categories can later be listed in the order
// they were written.
//
// # Quick Start
//
//	fragments, err := loader.LoadAllFromDirectory("docs/")
//	if err != nil {
//		log.Fatal(err)
//	}
//	extra, err := loader.LoadFromFile("overrides.yaml")
//
// Or configure a reusable Loader:
//
//	l := loader.New()
//	l.Logger = loader.NewSlogAdapter(slog.Default())
//	l.MaxFileSize = 1 << 20
//	tree, err := l.LoadFromFile("docs/v1.toml")
//
// # Directory Loading
//
// [Loader.LoadAllFromDirectory] is not recursive. It reads the files of a
// directory in lexical name order, skipping hidden files and files whose
// extension is not .yaml, .yml, .json or .toml.
//
// # Errors
//
// Undecodable content fails with a [docerrors.ParseError]; a fragment whose
// top level is a sequence or scalar fails with a [docerrors.StructureError].
// An empty file loads as an empty mapping.
//
// This package also defines the [Logger] interface shared by every pipeline
// stage, with [NopLogger] and [SlogAdapter] implementations.
package loader

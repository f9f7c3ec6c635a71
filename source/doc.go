// Package source runs the documentation pipeline from a configuration.
//
// A run loads the configured fragments (every directory in order, then every
// file in order), merges them, resolves extends references with
// [extender.DefaultPaths], substitutes every argument, builds the object
// graph, applies the display filters, prunes hidden elements and wraps the
// result in the ordered view of the dto package:
//
//	cfg, err := config.Load("apidoc.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	view, err := source.New().CreateFromConfig(ctx, cfg)
//
// The loader, merger and extender of a [Source] may be replaced, for example
// by test doubles; unset collaborators fall back to the default
// implementations. [BuildWithOptions] is the functional-options entry point
// and returns a [Result] that also carries the merged tree.
//
// Any stage error aborts the run. The error wraps the typed errors of the
// docerrors package, so callers can test for them with errors.Is and
// errors.As.
package source

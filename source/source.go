package source

import (
	"context"
	"fmt"

	"github.com/lucasvieiramay/apidoc/argument"
	"github.com/lucasvieiramay/apidoc/builder"
	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/dto"
	"github.com/lucasvieiramay/apidoc/extender"
	"github.com/lucasvieiramay/apidoc/filter"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/merger"
	"github.com/lucasvieiramay/apidoc/model"
	"github.com/lucasvieiramay/apidoc/node"
)

// FragmentLoader reads fragments from disk.
type FragmentLoader interface {
	LoadFromFile(path string) (*node.Node, error)
	LoadAllFromDirectory(dir string) ([]*node.Node, error)
}

// FragmentMerger merges fragments into one tree.
type FragmentMerger interface {
	MergeSources(fragments []*node.Node) *node.Node
}

// TreeExtender resolves extends references.
type TreeExtender interface {
	Extends(tree *node.Node, paths ...string) (*node.Node, error)
}

// Source runs the documentation pipeline.
//
// Concurrency: a Source holds no state between runs and may be shared, as
// long as its collaborators may be too.
type Source struct {
	// Loader reads fragments. If nil, a loader.Loader sharing Logger is used.
	Loader FragmentLoader
	// Merger merges fragments. If nil, a merger.Merger is used.
	Merger FragmentMerger
	// Extender resolves extends. If nil, an extender.Extender is used.
	Extender TreeExtender

	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger loader.Logger
	// StrictReferences makes a method naming an unknown category an error.
	StrictReferences bool
}

// Result holds everything a pipeline run produced.
type Result struct {
	// Root is the ordered view of the pruned graph.
	Root *dto.Root
	// Tree is the merged tree after extension and argument substitution.
	Tree *node.Node
	// Stats counts the elements of Root.
	Stats dto.Stats
	// Warnings lists configuration settings that were accepted but ignored.
	Warnings []string
	// Unresolved lists placeholders left in Tree after substitution.
	Unresolved []string
}

// New creates a new Source instance with default collaborators.
func New() *Source {
	return &Source{}
}

func (s *Source) log() loader.Logger {
	return loader.OrNop(s.Logger)
}

// LoaderOrDefault returns the configured loader, or a default one.
func (s *Source) LoaderOrDefault() FragmentLoader {
	if s.Loader == nil {
		return &loader.Loader{Logger: s.Logger}
	}
	return s.Loader
}

// MergerOrDefault returns the configured merger, or a default one.
func (s *Source) MergerOrDefault() FragmentMerger {
	if s.Merger == nil {
		return &merger.Merger{Logger: s.Logger}
	}
	return s.Merger
}

// ExtenderOrDefault returns the configured extender, or a default one.
func (s *Source) ExtenderOrDefault() TreeExtender {
	if s.Extender == nil {
		return &extender.Extender{Logger: s.Logger}
	}
	return s.Extender
}

// CreateFromConfig runs the whole pipeline and returns the ordered view.
func (s *Source) CreateFromConfig(ctx context.Context, cfg *config.Config) (*dto.Root, error) {
	res, err := s.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Root, nil
}

// Run runs the whole pipeline: load, merge, extend, substitute, build,
// filter, prune and order. ctx is checked between stages.
func (s *Source) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	res := &Result{}
	tree, warnings, err := s.mergeFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res.Tree = tree
	res.Warnings = warnings
	res.Unresolved = argument.Unresolved(tree)
	if len(res.Unresolved) > 0 {
		s.log().Warn("placeholders left without a value", "names", res.Unresolved)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	b := &builder.Builder{Logger: s.Logger, StrictReferences: s.StrictReferences}
	root, err := b.Build(tree)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	s.HideFilteredElements(root, cfg.Filter)
	s.RemoveHiddenElements(root)

	res.Root = dto.NewRoot(root)
	res.Stats = res.Root.Stats()
	s.log().Info("documentation built",
		"versions", res.Stats.Versions,
		"categories", res.Stats.Categories,
		"methods", res.Stats.Methods)
	return res, nil
}

// MergeFromConfig runs the raw stages of the pipeline and returns the merged
// tree after extension and argument substitution.
func (s *Source) MergeFromConfig(ctx context.Context, cfg *config.Config) (*node.Node, error) {
	tree, _, err := s.mergeFromConfig(ctx, cfg)
	return tree, err
}

func (s *Source) mergeFromConfig(ctx context.Context, cfg *config.Config) (*node.Node, []string, error) {
	if cfg == nil {
		return nil, nil, &docerrors.ConfigError{Option: "config", Message: "configuration cannot be nil"}
	}
	warnings, err := cfg.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	for _, w := range warnings {
		s.log().Warn(w)
	}

	fragments, err := s.loadFragments(ctx, cfg.Input)
	if err != nil {
		return nil, nil, err
	}

	merged := s.MergerOrDefault().MergeSources(fragments)

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	extended, err := s.ExtenderOrDefault().Extends(merged, extender.DefaultPaths...)
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}

	tree := extended
	for _, arg := range cfg.Input.Arguments {
		tree = s.ReplaceArgument(tree, arg.Name, arg.Value)
	}
	return tree, warnings, nil
}

// loadFragments loads every directory, then every file, in order.
func (s *Source) loadFragments(ctx context.Context, in config.Input) ([]*node.Node, error) {
	l := s.LoaderOrDefault()

	var fragments []*node.Node
	for _, dir := range in.Directories {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		loaded, err := l.LoadAllFromDirectory(dir)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		fragments = append(fragments, loaded...)
	}
	for _, file := range in.Files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		loaded, err := l.LoadFromFile(file)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		fragments = append(fragments, loaded)
	}
	s.log().Debug("loaded fragments", "count", len(fragments))
	return fragments, nil
}

// ReplaceArgument returns a copy of tree with every "${name}" replaced by
// the string form of value.
func (s *Source) ReplaceArgument(tree *node.Node, name string, value any) *node.Node {
	sub := &argument.Substitutor{Logger: s.Logger}
	return sub.ReplaceArgument(tree, name, value)
}

// HideFilteredElements sets the display flags of root from rules.
func (s *Source) HideFilteredElements(root *model.Root, rules config.Filter) {
	f := &filter.Filter{Logger: s.Logger}
	f.HideFilteredElements(root, rules)
}

// RemoveHiddenElements prunes hidden versions and the methods of hidden
// categories from root.
func (s *Source) RemoveHiddenElements(root *model.Root) {
	f := &filter.Filter{Logger: s.Logger}
	f.RemoveHiddenElements(root)
}

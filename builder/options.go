package builder

import (
	"fmt"

	"github.com/lucasvieiramay/apidoc/internal/options"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/model"
	"github.com/lucasvieiramay/apidoc/node"
)

// Option is a function that configures a build operation
type Option func(*buildConfig) error

// buildConfig holds configuration for a build operation
type buildConfig struct {
	// Input source (exactly one must be set)
	tree     *node.Node
	filePath *string

	logger           loader.Logger
	strictReferences bool
}

// BuildWithOptions builds an object graph using functional options.
//
// Example:
//
//	root, err := builder.BuildWithOptions(
//	    builder.WithTree(tree),
//	    builder.WithStrictReferences(true),
//	)
func BuildWithOptions(opts ...Option) (*model.Root, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("builder: invalid options: %w", err)
	}

	tree := cfg.tree
	if cfg.filePath != nil {
		tree, err = loader.LoadWithOptions(
			loader.WithFilePath(*cfg.filePath),
			loader.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("builder: %w", err)
		}
	}

	b := &Builder{Logger: cfg.logger, StrictReferences: cfg.strictReferences}
	return b.Build(tree)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*buildConfig, error) {
	cfg := &buildConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireSingleInput(
		options.Input{Option: "WithTree", Set: cfg.tree != nil},
		options.Input{Option: "WithFilePath", Set: cfg.filePath != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithTree specifies a merged documentation tree as the input source
func WithTree(tree *node.Node) Option {
	return func(cfg *buildConfig) error {
		if tree == nil {
			return fmt.Errorf("tree cannot be nil")
		}
		cfg.tree = tree
		return nil
	}
}

// WithFilePath specifies a single fragment file as the input source
func WithFilePath(path string) Option {
	return func(cfg *buildConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
func WithLogger(l loader.Logger) Option {
	return func(cfg *buildConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithStrictReferences makes a method naming an unknown category fail the
// build with a docerrors.ReferenceError.
// Default: false
func WithStrictReferences(enabled bool) Option {
	return func(cfg *buildConfig) error {
		cfg.strictReferences = enabled
		return nil
	}
}

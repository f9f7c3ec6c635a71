package source

import (
	"context"
	"fmt"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/internal/options"
	"github.com/lucasvieiramay/apidoc/loader"
)

// Option is a function that configures a pipeline run
type Option func(*runConfig) error

// runConfig holds configuration for a pipeline run
type runConfig struct {
	// Input source (exactly one must be set)
	config     *config.Config
	configFile *string

	ctx              context.Context
	logger           loader.Logger
	strictReferences bool
}

// BuildWithOptions runs the pipeline using functional options.
//
// Example:
//
//	res, err := source.BuildWithOptions(
//	    source.WithConfigFile("apidoc.yaml"),
//	    source.WithLogger(loader.NewSlogAdapter(slog.Default())),
//	)
//	for _, c := range res.Root.Categories() {
//	    fmt.Println(c.Label)
//	}
func BuildWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("source: invalid options: %w", err)
	}

	conf := cfg.config
	if cfg.configFile != nil {
		conf, err = config.Load(*cfg.configFile)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
	}

	s := &Source{Logger: cfg.logger, StrictReferences: cfg.strictReferences}
	return s.Run(cfg.ctx, conf)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*runConfig, error) {
	cfg := &runConfig{ctx: context.Background()}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireSingleInput(
		options.Input{Option: "WithConfig", Set: cfg.config != nil},
		options.Input{Option: "WithConfigFile", Set: cfg.configFile != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithConfig specifies an in-memory configuration
func WithConfig(c *config.Config) Option {
	return func(cfg *runConfig) error {
		if c == nil {
			return fmt.Errorf("config cannot be nil")
		}
		cfg.config = c
		return nil
	}
}

// WithConfigFile specifies a configuration file to load
func WithConfigFile(path string) Option {
	return func(cfg *runConfig) error {
		cfg.configFile = &path
		return nil
	}
}

// WithContext sets the context checked between pipeline stages.
// Default: context.Background()
func WithContext(ctx context.Context) Option {
	return func(cfg *runConfig) error {
		if ctx == nil {
			return fmt.Errorf("context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
func WithLogger(l loader.Logger) Option {
	return func(cfg *runConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithStrictReferences makes a method naming an unknown category fail the
// run with a docerrors.ReferenceError.
// Default: false
func WithStrictReferences(enabled bool) Option {
	return func(cfg *runConfig) error {
		cfg.strictReferences = enabled
		return nil
	}
}

package loader

import (
	"fmt"

	"github.com/lucasvieiramay/apidoc/internal/options"
	"github.com/lucasvieiramay/apidoc/node"
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte

	format      Format
	sourceName  string
	logger      Logger
	maxFileSize int64
}

// LoadWithOptions loads a single fragment using functional options.
//
// Example:
//
//	tree, err := loader.LoadWithOptions(
//	    loader.WithFilePath("docs/v1.yaml"),
//	    loader.WithLogger(loader.NewSlogAdapter(slog.Default())),
//	)
func LoadWithOptions(opts ...Option) (*node.Node, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}

	l := &Loader{Logger: cfg.logger, MaxFileSize: cfg.maxFileSize}
	if cfg.filePath != nil {
		return l.LoadFromFile(*cfg.filePath)
	}

	format := cfg.format
	if format == FormatUnknown {
		format = formatFromContent(cfg.bytes)
	}
	return l.LoadBytes(cfg.bytes, format, cfg.sourceName)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		format:     FormatUnknown,
		sourceName: "<bytes>",
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireSingleInput(
		options.Input{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Input{Option: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	return cfg, nil
}

// WithFilePath specifies a fragment file as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies an in-memory fragment as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return fmt.Errorf("loader: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithFormat sets the format of a WithBytes fragment.
// Default: detected from content (JSON or YAML)
func WithFormat(format Format) Option {
	return func(cfg *loadConfig) error {
		cfg.format = format
		return nil
	}
}

// WithSourceName names a WithBytes fragment in error messages.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum fragment size in bytes.
// Default: 10MB
func WithMaxFileSize(size int64) Option {
	return func(cfg *loadConfig) error {
		if size < 0 {
			return fmt.Errorf("loader: max file size cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}

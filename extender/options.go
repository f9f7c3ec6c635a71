package extender

import (
	"fmt"

	"github.com/lucasvieiramay/apidoc/loader"
)

// Option is a function that configures an Extender
type Option func(*Extender) error

// NewWithOptions creates an Extender configured by opts.
//
// Example:
//
//	e, err := extender.NewWithOptions(
//	    extender.WithExtendsKey("inherits"),
//	    extender.WithLogger(logger),
//	)
//	extended, err := e.Extends(tree, extender.DefaultPaths...)
func NewWithOptions(opts ...Option) (*Extender, error) {
	e := New()
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("extender: invalid options: %w", err)
		}
	}
	if e.extendsKey() == e.removedKey() {
		return nil, fmt.Errorf("extender: invalid options: extends key and removed key are both %q", e.extendsKey())
	}
	return e, nil
}

// WithLogger sets a structured logger for debug output.
func WithLogger(l loader.Logger) Option {
	return func(e *Extender) error {
		e.Logger = l
		return nil
	}
}

// WithExtendsKey sets the key holding references.
// Default: "extends"
func WithExtendsKey(key string) Option {
	return func(e *Extender) error {
		if key == "" {
			return fmt.Errorf("extends key cannot be empty")
		}
		e.ExtendsKey = key
		return nil
	}
}

// WithRemovedKey sets the key that marks mappings for deletion.
// Default: "removed"
func WithRemovedKey(key string) Option {
	return func(e *Extender) error {
		if key == "" {
			return fmt.Errorf("removed key cannot be empty")
		}
		e.RemovedKey = key
		return nil
	}
}

// WithSeparator sets the separator of patterns and references.
// Default: "/"
func WithSeparator(sep string) Option {
	return func(e *Extender) error {
		if sep == "" {
			return fmt.Errorf("separator cannot be empty")
		}
		e.Separator = sep
		return nil
	}
}

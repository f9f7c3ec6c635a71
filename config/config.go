// Package config defines the configuration of a documentation build.
//
// A [Config] lists the fragment inputs (directories, then files), the
// arguments substituted into "${name}" placeholders, and the include/exclude
// rules that decide which versions and categories are displayed.
//
// Configurations are read from YAML, JSON or TOML files with [Load], which
// validates the file against an embedded CUE schema:
//
//	input:
//	  directories: [docs/common, docs/v1]
//	  files: [docs/overrides.yaml]
//	  arguments:
//	    host: api.example.com
//	filter:
//	  versions:
//	    excludes: [beta]
//
// Command-line values are layered on top of a file with [Merge].
package config

import (
	"fmt"
	"slices"

	"github.com/lucasvieiramay/apidoc/docerrors"
)

// Config is the configuration of a documentation build.
type Config struct {
	Input  Input  `mapstructure:"input" json:"input" yaml:"input"`
	Filter Filter `mapstructure:"filter" json:"filter" yaml:"filter"`
}

// Input lists where fragments come from. Directories are loaded before files,
// each list in order.
type Input struct {
	Directories []string `mapstructure:"directories" json:"directories,omitempty" yaml:"directories,omitempty"`
	Files       []string `mapstructure:"files" json:"files,omitempty" yaml:"files,omitempty"`
	// Arguments keep the order of the configuration file; they are decoded
	// separately from the other fields.
	Arguments Arguments `mapstructure:"-" json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// HasSources reports whether at least one directory or file is configured.
func (i Input) HasSources() bool {
	return len(i.Directories) > 0 || len(i.Files) > 0
}

// Argument is one named value substituted for "${Name}".
type Argument struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Arguments is an ordered list of arguments.
type Arguments []Argument

// Get returns the value of the argument called name.
func (a Arguments) Get(name string) (any, bool) {
	i := slices.IndexFunc(a, func(arg Argument) bool { return arg.Name == name })
	if i < 0 {
		return nil, false
	}
	return a[i].Value, true
}

// With returns a copy of a in which name is set to value. An existing
// argument keeps its position.
func (a Arguments) With(name string, value any) Arguments {
	out := slices.Clone(a)
	if i := slices.IndexFunc(out, func(arg Argument) bool { return arg.Name == name }); i >= 0 {
		out[i].Value = value
		return out
	}
	return append(out, Argument{Name: name, Value: value})
}

// Names returns the argument names in order.
func (a Arguments) Names() []string {
	names := make([]string, len(a))
	for i, arg := range a {
		names[i] = arg.Name
	}
	return names
}

// Filter holds the display rules.
type Filter struct {
	Versions   FilterRule `mapstructure:"versions" json:"versions" yaml:"versions"`
	Categories FilterRule `mapstructure:"categories" json:"categories" yaml:"categories"`
}

// FilterRule selects names to display. When Includes is set only those names
// are displayed and Excludes is ignored; otherwise names in Excludes are
// hidden.
type FilterRule struct {
	Includes []string `mapstructure:"includes" json:"includes,omitempty" yaml:"includes,omitempty"`
	Excludes []string `mapstructure:"excludes" json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// IsEmpty reports whether the rule neither includes nor excludes anything.
func (r FilterRule) IsEmpty() bool {
	return len(r.Includes) == 0 && len(r.Excludes) == 0
}

// Default returns an empty configuration: no inputs, no arguments, and
// filters that display everything.
func Default() *Config {
	return &Config{}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	return &Config{
		Input: Input{
			Directories: slices.Clone(c.Input.Directories),
			Files:       slices.Clone(c.Input.Files),
			Arguments:   slices.Clone(c.Input.Arguments),
		},
		Filter: Filter{
			Versions:   c.Filter.Versions.clone(),
			Categories: c.Filter.Categories.clone(),
		},
	}
}

func (r FilterRule) clone() FilterRule {
	return FilterRule{Includes: slices.Clone(r.Includes), Excludes: slices.Clone(r.Excludes)}
}

// Validate checks that c can drive a build. It fails when no input is
// configured or an argument has no name, and returns warnings for settings
// that are accepted but partly ignored.
func (c *Config) Validate() ([]string, error) {
	if c == nil || !c.Input.HasSources() {
		return nil, &docerrors.ConfigError{
			Option:  "input",
			Message: "no directories or files configured",
		}
	}

	var warnings []string
	seen := make(map[string]bool, len(c.Input.Arguments))
	for i, arg := range c.Input.Arguments {
		if arg.Name == "" {
			return nil, &docerrors.ConfigError{
				Option:  "input.arguments",
				Value:   i,
				Message: "argument name cannot be empty",
			}
		}
		if arg.Value == nil {
			return nil, &docerrors.ConfigError{
				Option:  "input.arguments." + arg.Name,
				Message: "argument value cannot be null",
			}
		}
		if seen[arg.Name] {
			warnings = append(warnings, fmt.Sprintf("argument %q is set more than once; values are substituted in order", arg.Name))
		}
		seen[arg.Name] = true
	}

	for _, rule := range []struct {
		scope string
		rule  FilterRule
	}{
		{"versions", c.Filter.Versions},
		{"categories", c.Filter.Categories},
	} {
		if len(rule.rule.Includes) > 0 && len(rule.rule.Excludes) > 0 {
			warnings = append(warnings, fmt.Sprintf("filter.%s sets both includes and excludes; excludes are ignored", rule.scope))
		}
	}

	return warnings, nil
}

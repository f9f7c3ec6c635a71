package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge returns base with the non-empty settings of override laid on top.
// Lists set in override replace those of base; arguments are merged by name,
// so an override argument replaces the base value in place and new names are
// appended. Neither input is modified.
func Merge(base, override *Config) (*Config, error) {
	out := base.Clone()
	if out == nil {
		out = Default()
	}
	if override == nil {
		return out, nil
	}

	src := override.Clone()
	args := out.Input.Arguments
	for _, arg := range src.Input.Arguments {
		args = args.With(arg.Name, arg.Value)
	}
	out.Input.Arguments, src.Input.Arguments = nil, nil

	if err := mergo.Merge(out, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("config: merge failed: %w", err)
	}
	out.Input.Arguments = args
	return out, nil
}

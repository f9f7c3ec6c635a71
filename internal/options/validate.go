// Package options holds validation shared by the functional-options entry
// points of the pipeline packages.
package options

import (
	"strings"

	"github.com/lucasvieiramay/apidoc/docerrors"
)

// Input names one way of supplying input to an entry point and whether the
// caller used it.
type Input struct {
	Option string
	Set    bool
}

// RequireSingleInput returns a docerrors.ConfigError unless exactly one of
// inputs is set.
func RequireSingleInput(inputs ...Input) error {
	names := make([]string, 0, len(inputs))
	var set []string
	for _, in := range inputs {
		names = append(names, in.Option)
		if in.Set {
			set = append(set, in.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &docerrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + strings.Join(names, " or ") + ")",
		}
	default:
		return &docerrors.ConfigError{
			Option:  "input",
			Value:   set,
			Message: "must specify exactly one input source",
		}
	}
}

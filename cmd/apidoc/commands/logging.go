package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/lucasvieiramay/apidoc/loader"
)

// newLogger returns the pipeline logger writing to w. The charm logger is
// installed as the slog handler so that library code only sees loader.Logger.
func newLogger(w io.Writer, level string, quiet bool) (loader.Logger, error) {
	if quiet {
		return loader.NopLogger{}, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "apidoc",
	})
	return loader.NewSlogAdapter(slog.New(handler)), nil
}

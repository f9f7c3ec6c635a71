package commands

import (
	"github.com/spf13/cobra"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/internal/cliutil"
)

// inputFlags holds the input and filter flags shared by build and merge.
type inputFlags struct {
	directories []string
	files       []string
	arguments   []string

	includeVersions   []string
	excludeVersions   []string
	includeCategories []string
	excludeCategories []string
}

func (f *inputFlags) register(cmd *cobra.Command, withFilters bool) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.directories, "directory", "d", nil, "fragment directory, loaded in order (repeatable)")
	flags.StringSliceVarP(&f.files, "file", "f", nil, "fragment file, loaded after the directories (repeatable)")
	flags.StringArrayVarP(&f.arguments, "arg", "a", nil, "argument substituted for ${name}, as name=value (repeatable)")
	if !withFilters {
		return
	}
	flags.StringSliceVar(&f.includeVersions, "include-version", nil, "display only these versions")
	flags.StringSliceVar(&f.excludeVersions, "exclude-version", nil, "hide these versions")
	flags.StringSliceVar(&f.includeCategories, "include-category", nil, "display only these categories")
	flags.StringSliceVar(&f.excludeCategories, "exclude-category", nil, "hide these categories")
}

// config returns the flags as a configuration to merge over the file one.
func (f *inputFlags) config() (*config.Config, error) {
	args, err := cliutil.ParseArguments(f.arguments)
	if err != nil {
		return nil, err
	}
	return &config.Config{
		Input: config.Input{
			Directories: f.directories,
			Files:       f.files,
			Arguments:   args,
		},
		Filter: config.Filter{
			Versions:   config.FilterRule{Includes: f.includeVersions, Excludes: f.excludeVersions},
			Categories: config.FilterRule{Includes: f.includeCategories, Excludes: f.excludeCategories},
		},
	}, nil
}

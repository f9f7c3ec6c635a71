package commands

import (
	"github.com/spf13/cobra"

	"github.com/lucasvieiramay/apidoc/internal/cliutil"
	"github.com/lucasvieiramay/apidoc/source"
)

func newMergeCommand(a *app) *cobra.Command {
	var (
		in     inputFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Print the merged fragment tree",
		Long: `Merge loads and merges every fragment, resolves extends references and
substitutes the arguments, then prints the raw tree the documentation
would be built from. Filters do not apply to the raw tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cliutil.ValidateOutputFormat(format, cliutil.FormatJSON, cliutil.FormatYAML); err != nil {
				return err
			}
			cfg, err := a.resolveConfig(&in)
			if err != nil {
				return err
			}
			tree, err := (&source.Source{Logger: a.logger}).MergeFromConfig(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return cliutil.WriteStructured(cmd.OutOrStdout(), tree, format)
		},
	}
	in.register(cmd, false)
	cmd.Flags().StringVar(&format, "format", cliutil.FormatYAML, "output format: json or yaml")
	return cmd
}

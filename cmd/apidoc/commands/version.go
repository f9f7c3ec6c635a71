package commands

import (
	"github.com/spf13/cobra"

	"github.com/lucasvieiramay/apidoc"
	"github.com/lucasvieiramay/apidoc/internal/cliutil"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cliutil.Writef(cmd.OutOrStdout(), "%s\n%s\n", TitleStyle.Render("apidoc"), apidoc.BuildInfo())
		},
	}
}

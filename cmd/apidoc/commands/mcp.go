package commands

import (
	"github.com/spf13/cobra"

	"github.com/lucasvieiramay/apidoc/internal/mcpserver"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the build and merge tools over MCP on stdio",
		Long: `Mcp starts a Model Context Protocol server on stdin and stdout. Tool
defaults are read from APIDOC_* environment variables; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context(), a.logger)
		},
	}
}

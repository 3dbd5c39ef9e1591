package cmd

import (
	"github.com/spf13/cobra"

	"github.com/modem-tools/modemsms/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the modem operations as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			srv := mcp.New(client, newLogger())
			return srv.Run(cmd.Context())
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the catalog's command names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			for _, name := range client.ListCommands() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

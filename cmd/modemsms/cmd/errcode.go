package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newErrcodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errcode <code>",
		Short: "Describe a device error code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			fmt.Println(client.ErrorDescription(args[0]))
			return nil
		},
	}
}

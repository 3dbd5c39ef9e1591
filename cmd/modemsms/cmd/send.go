package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <number> <message>",
		Short: "Send an SMS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			res, err := client.SendMessage(cmd.Context(), args[1], args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Status: %d\n", res.Status)
			return printBody(res)
		},
	}
}

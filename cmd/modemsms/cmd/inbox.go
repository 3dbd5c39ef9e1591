package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List SMS messages stored on the modem or SIM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			msgs, err := client.ListInbox(cmd.Context())
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Println("Inbox is empty.")
				return nil
			}
			for _, m := range msgs {
				fmt.Printf("%-8s %-16s %-20s %s\n", m.Index(), m.Phone(), m.Date(), m.Content())
			}
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every message in the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			results, err := client.ClearInbox(cmd.Context())
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Printf("%-8s failed: %v\n", r.Index, r.Err)
					continue
				}
				fmt.Printf("%-8s deleted\n", r.Index)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d deletions failed", failed, len(results))
			}
			fmt.Printf("Deleted %d messages.\n", len(results))
			return nil
		},
	}
}

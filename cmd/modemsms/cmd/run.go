package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

func newRunCmd() *cobra.Command {
	var fields []string

	runCmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Run a catalog command with optional field overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseFields(fields)
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			res, err := client.RunCommand(cmd.Context(), args[0], overrides)
			if err != nil {
				return err
			}
			fmt.Printf("Status: %d\n", res.Status)
			return printBody(res)
		},
	}

	runCmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "scalar field override as Key=Value (repeatable)")
	return runCmd
}

// parseFields converts repeated Key=Value flags into an override node.
// Values may contain '='; only the first one splits.
func parseFields(fields []string) (*xmlcodec.Node, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	overrides := xmlcodec.NewNode()
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, want Key=Value", f)
		}
		overrides.Set(key, xmlcodec.Scalar(value))
	}
	return overrides, nil
}

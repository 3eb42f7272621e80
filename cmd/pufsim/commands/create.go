package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// createCmd registers a new session on the server.
func createCmd() *cobra.Command {
	var (
		pufType string
		numCRPs int
	)
	cmd := &cobra.Command{
		Use:   "create <device-id>",
		Short: "Create a provisioning session for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := api.CreateSession(args[0], pufType, numCRPs)
			if err != nil {
				return fmt.Errorf("creating session for %q: %w", args[0], err)
			}
			color.Green("Session created: %s", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&pufType, "puf-type", "arbiter", "PUF type: arbiter, sram or fallback")
	cmd.Flags().IntVar(&numCRPs, "crps", 10, "number of CRPs to enroll (1-1000)")
	return cmd
}

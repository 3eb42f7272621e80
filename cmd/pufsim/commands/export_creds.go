package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pufsim/internal/store"
)

// exportCredsCmd fetches a provisioned session's credential snapshot
// from pufsimd and writes it to an encrypted file.
func exportCredsCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "export-creds <session-id> <file>",
		Short: "Export a session's provisioned credentials to an encrypted file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := api.Credentials(args[0])
			if err != nil {
				return err
			}
			if err := store.NewCredentialFileStore().Export(args[1], passphrase, creds); err != nil {
				return fmt.Errorf("exporting credentials to %q: %w", args[1], err)
			}
			color.Green("Credentials for %s exported to %s", creds.DeviceID, args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the exported file")
	_ = cmd.MarkFlagRequired("passphrase")
	return cmd
}

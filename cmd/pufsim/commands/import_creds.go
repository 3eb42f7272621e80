package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pufsim/internal/store"
)

// importCredsCmd decrypts a credential file produced by run --export-creds.
func importCredsCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "import-creds <file>",
		Short: "Decrypt and print an exported credential file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := store.NewCredentialFileStore().Import(args[0], passphrase)
			if err != nil {
				return fmt.Errorf("importing credentials from %q: %w", args[0], err)
			}
			fmt.Printf("device:    %s\n", creds.DeviceID)
			fmt.Printf("token:     %s\n", creds.Token)
			fmt.Printf("issued:    %s\n", creds.IssuedAt)
			fmt.Printf("expires:   %s\n", creds.ExpiresAt)
			fmt.Printf("certificate:\n%s\n", creds.Certificate)
			return nil
		},
	}
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase the file was exported with")
	_ = cmd.MarkFlagRequired("passphrase")
	return cmd
}

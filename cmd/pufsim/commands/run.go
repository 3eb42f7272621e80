package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pufsim/internal/app"
)

// runCmd drives every phase in order against an in-process engine, so
// no pufsimd instance is needed. With --export-creds the provisioned
// credential snapshot is written to an encrypted file at the end.
func runCmd() *cobra.Command {
	var (
		pufType    string
		numCRPs    int
		exportPath string
		passphrase string
	)
	cmd := &cobra.Command{
		Use:   "run <device-id>",
		Short: "Run the full provisioning protocol end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID := args[0]
			if exportPath != "" && passphrase == "" {
				return fmt.Errorf("--passphrase is required with --export-creds")
			}

			wire := app.NewWire(app.Config{})

			id, err := wire.Sessions.Create(deviceID, pufType, numCRPs)
			if err != nil {
				return err
			}
			color.Cyan("[1/5] session %s created for %s", id, deviceID)

			enrolled, err := wire.Enrollment.Enroll(id)
			if err != nil {
				return err
			}
			color.Cyan("[2/5] enrolled %d CRPs", enrolled.CRPCount)

			auth, err := wire.Auth.Authenticate(id)
			if err != nil {
				return err
			}
			if !auth.Success {
				return fmt.Errorf("authentication mismatch: device=%d expected=%d",
					auth.DeviceResponse, auth.ExpectedResponse)
			}
			color.Cyan("[3/5] authenticated (challenge %s)", auth.ChallengePreview)

			exchanged, err := wire.Handshake.ExchangeKeys(id)
			if err != nil {
				return err
			}
			color.Cyan("[4/5] session key derived (%s)", exchanged.SessionKeyPreview)

			provisioned, err := wire.Provisioning.Provision(id)
			if err != nil {
				return err
			}
			operated, err := wire.Provisioning.Operate(id)
			if err != nil {
				return err
			}
			color.Cyan("[5/5] provisioned and operating")
			fmt.Printf("  %s\n  %s\n", operated.ServerMessage, operated.DeviceMessage)

			if exportPath != "" {
				creds, err := wire.Provisioning.Credentials(id)
				if err != nil {
					return err
				}
				if err := wire.Credentials.Export(exportPath, passphrase, creds); err != nil {
					return fmt.Errorf("exporting credentials: %w", err)
				}
				color.Green("Credentials exported to %s", exportPath)
			}

			color.Green("Protocol complete: %s (%s)", deviceID, provisioned.CredentialsPreview)
			return nil
		},
	}
	cmd.Flags().StringVar(&pufType, "puf-type", "arbiter", "PUF type: arbiter, sram or fallback")
	cmd.Flags().IntVar(&numCRPs, "crps", 10, "number of CRPs to enroll (1-1000)")
	cmd.Flags().StringVar(&exportPath, "export-creds", "", "write provisioned credentials to this file")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting exported credentials")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// printLog dumps a log snapshot, oldest first.
func printLog(log []string) {
	for _, line := range log {
		fmt.Println(line)
	}
}

// enrollCmd fills the session's CRP store.
func enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <session-id>",
		Short: "Enroll challenge-response pairs from the simulated PUF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Enroll(args[0])
			if err != nil {
				return err
			}
			printLog(result.Log)
			color.Green("Enrolled %d CRPs", result.CRPCount)
			return nil
		},
	}
}

// authCmd runs one challenge-response round.
func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth <session-id>",
		Short: "Authenticate the device against a stored CRP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Authenticate(args[0])
			if err != nil {
				return err
			}
			printLog(result.Log)
			if !result.Success {
				color.Red("Authentication failed: device=%d expected=%d (challenge %s)",
					result.DeviceResponse, result.ExpectedResponse, result.ChallengePreview)
				return fmt.Errorf("authentication mismatch")
			}
			color.Green("Authenticated (challenge %s, response %d)", result.ChallengePreview, result.DeviceResponse)
			return nil
		},
	}
}

// exchangeCmd runs the Diffie-Hellman exchange.
func exchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <session-id>",
		Short: "Run the Diffie-Hellman exchange and derive the session key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.ExchangeKeys(args[0])
			if err != nil {
				return err
			}
			printLog(result.Log)
			color.Green("Session key derived (%s)", result.SessionKeyPreview)
			return nil
		},
	}
}

// provisionCmd delivers encrypted credentials.
func provisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision <session-id>",
		Short: "Deliver encrypted credentials to the device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Provision(args[0])
			if err != nil {
				return err
			}
			printLog(result.Log)
			color.Green("Provisioned: %s", result.CredentialsPreview)
			return nil
		},
	}
}

// operateCmd runs the encrypted operational exchange.
func operateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operate <session-id>",
		Short: "Run the encrypted operational exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Operate(args[0])
			if err != nil {
				return err
			}
			printLog(result.Log)
			color.Green("Server message: %s", result.ServerMessage)
			color.Green("Device message: %s", result.DeviceMessage)
			return nil
		},
	}
}

// resetCmd clears protocol progress, keeping identity.
func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-id>",
		Short: "Reset a session's progress, keeping its identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.Reset(args[0]); err != nil {
				return err
			}
			color.Yellow("Session %s reset", args[0])
			return nil
		},
	}
}

// deleteCmd removes a session.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.Delete(args[0]); err != nil {
				return err
			}
			color.Yellow("Session %s deleted", args[0])
			return nil
		},
	}
}

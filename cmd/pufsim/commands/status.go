package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pufsim/internal/domain"
)

// statusCmd shows one session summary, or all of them.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [session-id]",
		Short: "Show session summaries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				summary, err := api.Summary(args[0])
				if err != nil {
					return err
				}
				printSummary(summary)
				return nil
			}
			summaries, err := api.List()
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("no sessions")
				return nil
			}
			for i, summary := range summaries {
				if i > 0 {
					fmt.Println()
				}
				printSummary(summary)
			}
			return nil
		},
	}
}

func printSummary(s domain.Summary) {
	fmt.Printf("session:     %s\n", s.ID)
	fmt.Printf("device:      %s\n", s.DeviceID)
	fmt.Printf("puf type:    %s\n", s.PUFType)
	fmt.Printf("crps:        %d/%d\n", s.CRPCount, s.NumCRPs)
	fmt.Printf("session key: %v\n", s.HasSessionKey)
	fmt.Printf("provisioned: %v\n", s.Provisioned)
	fmt.Printf("log entries: %d\n", s.LogCount)
}

package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pufsim/internal/app"
	"pufsim/internal/client"
)

const defaultServerURL = "http://127.0.0.1:8420"

var (
	serverURL  string
	configPath string

	api *client.HTTP
)

// Execute runs the pufsim CLI.
func Execute() error {
	root := &cobra.Command{
		Use:   "pufsim",
		Short: "PUF-based device provisioning simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				if dir, err := os.UserHomeDir(); err == nil {
					configPath = filepath.Join(dir, ".pufsim", "config.yaml")
				}
			}
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if serverURL == "" {
				serverURL = cfg.ServerURL
			}
			if serverURL == "" {
				serverURL = defaultServerURL
			}
			api = client.NewHTTP(serverURL)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "", "pufsimd base URL (default "+defaultServerURL+")")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.pufsim/config.yaml)")

	root.AddCommand(
		createCmd(),
		enrollCmd(),
		authCmd(),
		exchangeCmd(),
		provisionCmd(),
		operateCmd(),
		resetCmd(),
		deleteCmd(),
		statusCmd(),
		runCmd(),
		exportCredsCmd(),
		importCredsCmd(),
	)
	return root.Execute()
}

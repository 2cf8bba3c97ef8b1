package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the client",
	Long:  `Make the specified profile active and immediately start the interactive client.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileFlag = args[0]

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Persist the choice; flag overrides stay process-local.
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runInteractive(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}

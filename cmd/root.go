package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/cadcopilot/internal/app"
	"github.com/Rorical/cadcopilot/internal/config"
	"github.com/Rorical/cadcopilot/internal/logging"
)

// Flags shared by every command that talks to the service.
var (
	profileFlag string
	baseURLFlag string
	didFlag     string
	widFlag     string
	eidFlag     string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "cadcopilot",
	Short: "Context-aware assembly assistant",
	Long: `CAD Copilot sends a free-text assembly instruction to a recommendation
service and shows the recommended part with step-by-step tool settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		runInteractive(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&profileFlag, "profile", "", "profile to use instead of the active one")
	flags.StringVar(&baseURLFlag, "base-url", "", "recommendation service base URL")
	flags.StringVar(&didFlag, "did", "", "document id")
	flags.StringVar(&widFlag, "wid", "", "workspace id")
	flags.StringVar(&eidFlag, "eid", "", "element id")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

// loadConfig reads the config file and applies the deployment flags on top
// of the selected profile for this process only.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if profileFlag != "" {
		if err := cfg.UseProfile(profileFlag); err != nil {
			return nil, err
		}
	}

	d := cfg.Deployment()
	for _, o := range []struct {
		flag  string
		value string
		field *string
	}{
		{"base-url", baseURLFlag, &d.ServiceBaseURL},
		{"did", didFlag, &d.DocumentID},
		{"wid", widFlag, &d.WorkspaceID},
		{"eid", eidFlag, &d.ElementID},
	} {
		if o.value != "" {
			*o.field = o.value
		}
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("deployment: %w", err)
	}
	cfg.Override(d)
	return cfg, nil
}

func runInteractive(cfg *config.Config) {
	logger, err := logging.New(cfg.Logging(), verboseFlag)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		logger.Error("application error", zap.Error(err))
		log.Fatalf("Application error: %v", err)
	}
}

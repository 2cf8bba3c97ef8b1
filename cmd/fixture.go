package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/cadcopilot/internal/config"
	"github.com/Rorical/cadcopilot/internal/fixture"
	"github.com/Rorical/cadcopilot/internal/logging"
)

const shutdownTimeout = 5 * time.Second

var (
	fixtureAddr  string
	fixtureName  string
	fixtureDelay time.Duration
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture-server",
	Short: "Serve canned recommendations for demos",
	Long: fmt.Sprintf(`Serve a canned response on /auto-recommend so the client can be tried
without the recommendation service. Available fixtures: %s.`, strings.Join(fixture.Names(), ", ")),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := fixtureLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		server, err := fixture.NewServer(fixtureAddr, fixtureName, fixtureDelay, logger)
		if err != nil {
			return err
		}

		serverErrCh := make(chan error, 1)
		go func() {
			serverErrCh <- server.Start()
		}()
		logger.Info("fixture server listening",
			zap.String("addr", server.Addr()),
			zap.String("fixture", fixtureName),
			zap.Duration("delay", fixtureDelay))

		sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrCh:
			return err
		case <-sigCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return <-serverErrCh
	},
}

// fixtureLogger logs to stderr unless the saved config or the environment
// names a log file.
func fixtureLogger() (*zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewConsole(cfg.Logging(), verboseFlag)
}

func init() {
	fixtureCmd.Flags().StringVar(&fixtureAddr, "addr", ":8000", "listen address")
	fixtureCmd.Flags().StringVar(&fixtureName, "fixture", "fastener", "fixture to serve")
	fixtureCmd.Flags().DurationVar(&fixtureDelay, "delay", 0, "hold each recommendation this long")

	rootCmd.AddCommand(fixtureCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/cadcopilot/internal/client"
	"github.com/Rorical/cadcopilot/internal/config"
	"github.com/Rorical/cadcopilot/internal/core"
	"github.com/Rorical/cadcopilot/internal/logging"
	"github.com/Rorical/cadcopilot/internal/models"
	"github.com/Rorical/cadcopilot/internal/report"
	"github.com/Rorical/cadcopilot/internal/view"
	"github.com/Rorical/cadcopilot/ui/components"
)

type outputFormat string

const (
	formatMarkdown outputFormat = "markdown"
	formatJSON     outputFormat = "json"
	formatPlain    outputFormat = "plain"
	formatText     outputFormat = "text"
)

var (
	askJSON  bool
	askPlain bool
	askText  bool
	askWidth int
)

var askCmd = &cobra.Command{
	Use:   "ask [instruction...]",
	Short: "Request one recommendation and print it",
	Long: `Send a single instruction to the recommendation service and print the result.
By default the result is rendered as a Markdown report.`,
	Example: `  cadcopilot ask Insert screw for Top Die Shoe
  cadcopilot ask --json "Insert dowel pin"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := askLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		recommender, err := client.New(cfg.Deployment(), client.WithLogger(logger))
		if err != nil {
			return err
		}
		service := core.NewRecommendService(recommender, nil, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		instruction := strings.Join(args, " ")
		resp, err := service.Execute(ctx, instruction)
		if err != nil {
			return err
		}
		return writeAnswer(cmd.OutOrStdout(), selectedFormat(), instruction, resp, askWidth)
	},
}

func askLogger(cfg *config.Config) (*zap.Logger, error) {
	if verboseFlag {
		return logging.NewConsole(cfg.Logging(), true)
	}
	return logging.New(cfg.Logging(), false)
}

func selectedFormat() outputFormat {
	switch {
	case askJSON:
		return formatJSON
	case askPlain:
		return formatPlain
	case askText:
		return formatText
	default:
		return formatMarkdown
	}
}

// writeAnswer prints a settled response in the chosen format.
func writeAnswer(w io.Writer, format outputFormat, instruction string, resp models.RecommendationResponse, width int) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	tree := view.Project(models.Settled, &resp, instruction)
	var out string
	switch format {
	case formatPlain:
		out = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderHeader(""),
			components.RenderNotice(tree.Notice, width),
			components.RenderResult(tree.Result, width),
		) + "\n"
	case formatText:
		out = report.Text(tree, width)
	default:
		rendered, err := report.Render(tree, width)
		if err != nil {
			return err
		}
		out = rendered
	}
	_, err := io.WriteString(w, out)
	return err
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw response as JSON")
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "print the panes as drawn by the interactive client")
	askCmd.Flags().BoolVar(&askText, "text", false, "print wrapped plain text")
	askCmd.Flags().IntVar(&askWidth, "width", report.DefaultWidth, "output width in columns")
	askCmd.MarkFlagsMutuallyExclusive("json", "plain", "text")

	rootCmd.AddCommand(askCmd)
}

// ABOUTME: Root command, global flags, and engine setup shared by subcommands
// ABOUTME: Loads .env and configuration, sets the log level, and formats errors with their kind
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/vault-assistant/internal/app"
	"github.com/harper/vault-assistant/internal/config"
	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗   ██╗ █████╗ ██╗   ██╗██╗  ████████╗
██║   ██║██╔══██╗██║   ██║██║  ╚══██╔══╝
██║   ██║███████║██║   ██║██║     ██║
╚██╗ ██╔╝██╔══██║██║   ██║██║     ██║
 ╚████╔╝ ██║  ██║╚██████╔╝███████╗██║
  ╚═══╝  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Semantic search and prompt context for a folder of notes",
		Long: banner + `
Vault indexes a folder of notes into an embedding index and answers
similarity queries against it: find notes like a piece of text, or
collect the most relevant passages to ground a prompt.

Configuration comes from ~/.config/vault-assistant/config.yaml, a .env
file, and environment variables such as OPENAI_API_KEY and VAULT_ROOT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet cannot be used together")
			}
			switch outputFormat {
			case "auto", "text", "json":
			default:
				return fmt.Errorf("--format must be auto, text, or json, got %q", outputFormat)
			}
			// Load .env file if it exists (for API keys)
			_ = godotenv.Load()
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only show errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, or json")

	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewSimilarCmd())
	cmd.AddCommand(NewContextCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// FormatError renders err for the terminal with its kind
func FormatError(err error) string {
	var indexErr *indexAbortedError
	if errors.As(err, &indexErr) {
		return fmt.Sprintf("Error [%s]: %v (%d chunks embedded, nothing written)",
			models.ErrorKind(err), indexErr.err, indexErr.succeeded)
	}
	return fmt.Sprintf("Error [%s]: %v", models.ErrorKind(err), err)
}

// indexAbortedError carries the number of chunks embedded before an indexing run failed
type indexAbortedError struct {
	err       error
	succeeded int
}

func (e *indexAbortedError) Error() string { return e.err.Error() }
func (e *indexAbortedError) Unwrap() error { return e.err }

// loadConfig reads configuration and applies the log level from flags or config
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	if err := logging.SetLevel(level); err != nil {
		return nil, fmt.Errorf("%w: VAULT_LOG_LEVEL: %w", models.ErrConfiguration, err)
	}
	return cfg, nil
}

// openApp loads configuration and builds the engine
func openApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

// jsonOutput reports whether results should be printed as JSON
func jsonOutput() bool {
	return outputFormat == "json"
}

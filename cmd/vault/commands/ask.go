// ABOUTME: CLI command to ask the chat model with notes as context
// ABOUTME: Sends one non-streaming completion and prints the reply
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askTopK        int
	askShowContext bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask the chat model using your notes as context",
		Long: `Ask the chat model using your notes as context.

Finds the passages most relevant to the prompt, sends them along with
the prompt to the configured chat model, and prints the reply. With an
empty index the prompt is sent on its own.

Examples:
  vault ask "when did I last repot the fig?"
  vault ask --show-context --top-k 5 "draft an intro from my outline"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of passages (default: configured top K)")
	cmd.Flags().BoolVar(&askShowContext, "show-context", false, "Print the passages sent with the prompt")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := validateCount(askTopK, "top-k"); err != nil {
		return err
	}

	prompt, err := queryText(cmd, args)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	k := askTopK
	if k == 0 {
		k = a.Config.TopK
	}

	ctx := cmd.Context()

	answer, err := a.Assistant.Ask(ctx, prompt, k)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		jsonData, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if askShowContext && answer.Context != "" {
		fmt.Fprintf(out, "%s\n\n===\n\n", answer.Context)
	}
	fmt.Fprintln(out, answer.Reply)
	return nil
}

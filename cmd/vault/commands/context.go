// ABOUTME: CLI command to build prompt context from the vault
// ABOUTME: Prints the most relevant passages joined by the configured separator
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	contextTopK int
)

// NewContextCmd creates the context command
func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <prompt>",
		Short: "Collect relevant passages for a prompt",
		Long: `Collect relevant passages for a prompt.

Prints the chunks most similar to the prompt, best first, ready to be
pasted above the prompt for a language model. Use - to read the prompt
from stdin.

Examples:
  vault context "summarize my notes on sourdough"
  vault context --top-k 3 "what did we decide about pricing?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runContext,
	}

	cmd.Flags().IntVar(&contextTopK, "top-k", 0, "Number of passages (default: configured top K)")

	return cmd
}

func runContext(cmd *cobra.Command, args []string) error {
	if err := validateCount(contextTopK, "top-k"); err != nil {
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

	k := contextTopK
	if k == 0 {
		k = a.Config.TopK
	}

	text, err := a.Retriever.BuildAugmentedContext(cmd.Context(), prompt, k)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		jsonData, err := json.MarshalIndent(map[string]interface{}{"context": text}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(out, text)
	return nil
}

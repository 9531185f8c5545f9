// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Text truncation, flag validation, and reading query text from args or stdin
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// oneLine collapses whitespace runs, newlines included, to single spaces
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// validateCount rejects negative counts; zero means the configured default
func validateCount(n int, name string) error {
	if n < 0 {
		return fmt.Errorf("%s must not be negative, got %d", name, n)
	}
	return nil
}

// queryText joins args into the query, or reads stdin when the only arg is "-"
func queryText(cmd *cobra.Command, args []string) (string, error) {
	var text string
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	} else {
		text = strings.Join(args, " ")
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("query text is empty")
	}
	return text, nil
}

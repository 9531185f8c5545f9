// ABOUTME: CLI command to find notes similar to a piece of text
// ABOUTME: Prints one row per note, most similar first
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	similarLimit int
)

// NewSimilarCmd creates the similar command
func NewSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <text>",
		Short: "Find notes similar to text",
		Long: `Find notes similar to text.

Embeds the text and ranks every indexed note by cosine similarity of
its best matching chunk. Use - to read the text from stdin.

Examples:
  vault similar "raised beds for tomatoes"
  vault similar --limit 3 "quarterly planning"
  cat draft.md | vault similar -`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSimilar,
	}

	cmd.Flags().IntVar(&similarLimit, "limit", 0, "Maximum notes to return (default: configured top K)")

	return cmd
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if err := validateCount(similarLimit, "limit"); err != nil {
		return err
	}

	text, err := queryText(cmd, args)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	limit := similarLimit
	if limit == 0 {
		limit = a.Config.TopK
	}

	matches, err := a.Retriever.FindSimilarDocuments(cmd.Context(), text)
	if err != nil {
		return err
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		jsonData, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tNOTE\tPATH\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t----\t----\t-------\n")
	for _, m := range matches {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			m.Score,
			truncate(m.SourceDocLabel, 25),
			truncate(m.SourceDocID, 40),
			truncate(oneLine(m.ChunkText), 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(out, "\nFound %d note(s)\n", len(matches))
	}
	return nil
}

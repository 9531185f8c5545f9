// ABOUTME: CLI command to show the size of the index
// ABOUTME: Reports backend, location, record and note counts, and vector dimension
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long:  `Show where the index is stored and how many chunks and notes it holds.`,
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(out, "Backend:   %s\n", stats.Backend)
	fmt.Fprintf(out, "Location:  %s\n", stats.Location)
	fmt.Fprintf(out, "Chunks:    %d\n", stats.Records)
	fmt.Fprintf(out, "Notes:     %d\n", stats.Documents)
	fmt.Fprintf(out, "Dimension: %d\n", stats.Dimension)
	return nil
}

// ABOUTME: CLI command to index notes from the vault
// ABOUTME: Embeds every note under a folder and prints the run report
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/vault-assistant/internal/models"
)

var (
	indexReset bool
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [folder]",
		Short: "Index notes from the vault",
		Long: `Index notes from the vault.

Splits every note under the folder (default: the whole vault) into
overlapping chunks, embeds each chunk, and appends the results to the
index. Notes the embedding provider rejects are listed and skipped.

Examples:
  vault index
  vault index projects/garden
  vault index --reset`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIndex,
	}

	cmd.Flags().BoolVar(&indexReset, "reset", false, "Replace the index with this run's records once embedding completes")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	scope := ""
	if len(args) == 1 {
		scope = args[0]
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	report, err := a.Index(ctx, scope, indexReset)
	if err != nil {
		return &indexAbortedError{err: err, succeeded: report.Succeeded}
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		jsonData, err := json.MarshalIndent(reportJSON(report), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if len(report.Failed) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "NOTE\tCHUNK\tKIND\tREASON\n")
		fmt.Fprintf(w, "----\t-----\t----\t------\n")
		for _, f := range report.Failed {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", truncate(f.DocID, 40), f.ChunkIndex, f.Kind(), truncate(f.Reason.Error(), 60))
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if !quiet {
		fmt.Fprintf(out, "Indexed %d/%d chunks from %d notes", report.Succeeded, report.Chunks, report.Documents)
		if n := len(report.FailedDocs()); n > 0 {
			fmt.Fprintf(out, " (%d notes had failures)", n)
		}
		fmt.Fprintln(out)
	}
	return nil
}

type failureJSON struct {
	Note   string `json:"note_path"`
	Chunk  int    `json:"chunk_index"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type indexReportJSON struct {
	models.IndexingReport
	Failed []failureJSON `json:"failed"`
}

func reportJSON(r models.IndexingReport) indexReportJSON {
	out := indexReportJSON{IndexingReport: r, Failed: []failureJSON{}}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, failureJSON{
			Note:   f.DocID,
			Chunk:  f.ChunkIndex,
			Kind:   f.Kind(),
			Reason: f.Reason.Error(),
		})
	}
	return out
}

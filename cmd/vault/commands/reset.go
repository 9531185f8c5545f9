// ABOUTME: CLI command to discard the index
// ABOUTME: Requires --confirm before deleting anything
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetConfirm bool
)

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the index",
		Long: `Discard every record in the index.

Notes in the vault are not touched. Run 'vault index' afterwards to
rebuild the index.`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}

	cmd.Flags().BoolVar(&resetConfirm, "confirm", false, "Confirm the reset")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !resetConfirm {
		fmt.Fprintln(out, "This will discard the whole index!")
		fmt.Fprintln(out, "Run with --confirm to proceed")
		return nil
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Retriever.Reset(cmd.Context()); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintln(out, "Index reset")
	}
	return nil
}

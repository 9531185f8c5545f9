// ABOUTME: Version command showing build information and engine defaults
// ABOUTME: Prints the embedding and chat models a fresh install uses, as text or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/harper/vault-assistant/internal/config"
)

var (
	versionInfo = VersionInfo{
		Version: "dev",
		Commit:  "none",
		Date:    "unknown",
	}
)

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the vault-assistant build along with the default embedding
model, chat model, and chunking it indexes with.`,
		RunE: runVersion,
	}

	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	defaults := config.Default()
	out := cmd.OutOrStdout()

	if jsonOutput() {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"build":           versionInfo,
			"go":              runtime.Version(),
			"embedding_model": defaults.EmbeddingModel,
			"chat_model":      defaults.ChatModel,
			"chunk_size":      defaults.ChunkSize,
			"chunk_overlap":   defaults.ChunkOverlap,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(out, "vault-assistant %s (%s)\n", versionInfo.Version, runtime.Version())
	fmt.Fprintf(out, "Commit: %s\n", versionInfo.Commit)
	fmt.Fprintf(out, "Built:  %s\n", versionInfo.Date)
	fmt.Fprintf(out, "Embeds with %s in %d-character chunks (%d overlap), answers with %s\n",
		defaults.EmbeddingModel, defaults.ChunkSize, defaults.ChunkOverlap, defaults.ChatModel)
	return nil
}

// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents index and search the vault via stdio
package commands

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the vault assistant as an MCP (Model Context Protocol) server,
letting LLM agents like Claude index notes, find similar notes, and
build prompt context via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  vault mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "vault": {
  #       "command": "vault",
  #       "args": ["mcp"],
  #       "env": {"VAULT_ROOT": "/path/to/notes"}
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	logger := logging.New("MCP")
	if a.Config.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, indexing and search will fail")
	}

	server := mcpserver.NewMCPServer("Vault Assistant", versionInfo.Version)
	mcp.RegisterTools(server, a)

	ctx := cmd.Context()

	logger.Info("MCP server starting on stdio", "vault", a.Config.VaultRoot, "backend", a.Config.IndexBackend)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

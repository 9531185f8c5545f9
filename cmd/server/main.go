// ABOUTME: Main entry point for the vault assistant MCP server with stdio transport
// ABOUTME: Loads configuration, builds the engine, and serves all tools
package main

import (
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/vault-assistant/internal/app"
	"github.com/harper/vault-assistant/internal/config"
	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/mcp"
	"github.com/harper/vault-assistant/internal/models"
)

func main() {
	logger := logging.New("Server")

	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "kind", models.ErrorKind(err), "err", err)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("unknown log level, keeping info", "level", cfg.LogLevel)
	}
	logger = logging.New("Server")

	// Verify we have required API keys
	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, indexing and search will fail")
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Fatal("failed to initialize engine", "kind", models.ErrorKind(err), "err", err)
	}
	defer a.Close()

	server := mcpserver.NewMCPServer(
		"Vault Assistant",
		"0.1.0",
	)

	mcp.RegisterTools(server, a)

	logger.Info("MCP server starting on stdio", "vault", cfg.VaultRoot, "backend", cfg.IndexBackend)
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Error("server error", "err", err)
		a.Close()
		os.Exit(1)
	}
}

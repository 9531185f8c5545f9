// ABOUTME: MCP tool definitions and registration for the vault assistant server
// ABOUTME: Exposes indexing, similar-note search, context building, and reset as MCP tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/vault-assistant/internal/app"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, a *app.App) *Handlers {
	handlers := NewHandlers(a)

	// 1. index_folder - Embed every note under a folder of the vault
	server.AddTool(mcp.Tool{
		Name:        "index_folder",
		Description: "Chunk and embed every note under a folder of the vault and append them to the index. Returns a report with per-note failures.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder": map[string]interface{}{
					"type":        "string",
					"description": "Folder relative to the vault root (default: whole vault)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Replace the whole index with this run's records once embedding completes (default: false)",
					"default":     false,
				},
			},
		},
	}, handlers.IndexFolder)

	// 2. find_similar_notes - Rank notes by similarity to a text
	server.AddTool(mcp.Tool{
		Name:        "find_similar_notes",
		Description: "Find notes similar to the given text. Returns one entry per note, most similar first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to compare against the indexed notes",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of notes to return (default: configured top K)",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.FindSimilarNotes)

	// 3. build_context - Most relevant passages for a prompt
	server.AddTool(mcp.Tool{
		Name:        "build_context",
		Description: "Collect the passages from the vault most relevant to a prompt, joined into one context block.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Prompt to find supporting passages for",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Number of passages to include (default: configured top K)",
				},
			},
			Required: []string{"prompt"},
		},
	}, handlers.BuildContext)

	// 4. reset_index - Discard the index
	server.AddTool(mcp.Tool{
		Name:        "reset_index",
		Description: "Discard every record in the index.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ResetIndex)

	// 5. index_stats - Size of the index
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report how many records and notes the index holds.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}

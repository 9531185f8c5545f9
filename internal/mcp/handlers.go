// ABOUTME: MCP tool handler implementations for the vault assistant server
// ABOUTME: Engine errors come back as tool errors tagged with their kind
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/vault-assistant/internal/app"
	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	app    *app.App
	logger *log.Logger
}

// NewHandlers creates handlers over an engine
func NewHandlers(a *app.App) *Handlers {
	return &Handlers{app: a, logger: logging.New("MCP")}
}

type indexResponse struct {
	RunID     string        `json:"run_id"`
	Documents int           `json:"documents"`
	Chunks    int           `json:"chunks"`
	Succeeded int           `json:"succeeded"`
	Failed    []failedChunk `json:"failed"`
}

type failedChunk struct {
	Note   string `json:"note_path"`
	Chunk  int    `json:"chunk_index"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// IndexFolder handles the index_folder tool
func (h *Handlers) IndexFolder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := request.GetString("folder", "")
	reset := request.GetBool("reset", false)

	report, err := h.app.Index(ctx, folder, reset)
	if err != nil {
		return toolError("indexing failed", err, fmt.Sprintf(" (%d chunks embedded before the failure)", report.Succeeded)), nil
	}

	resp := indexResponse{
		RunID:     report.RunID,
		Documents: report.Documents,
		Chunks:    report.Chunks,
		Succeeded: report.Succeeded,
		Failed:    []failedChunk{},
	}
	for _, f := range report.Failed {
		resp.Failed = append(resp.Failed, failedChunk{
			Note:   f.DocID,
			Chunk:  f.ChunkIndex,
			Kind:   f.Kind(),
			Reason: f.Reason.Error(),
		})
	}
	return jsonResult(resp)
}

// FindSimilarNotes handles the find_similar_notes tool
func (h *Handlers) FindSimilarNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", h.app.Config.TopK)

	matches, err := h.app.Retriever.FindSimilarDocuments(ctx, text)
	if err != nil {
		return toolError("search failed", err, ""), nil
	}
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	return jsonResult(map[string]interface{}{
		"notes": matches,
		"count": len(matches),
	})
}

// BuildContext handles the build_context tool
func (h *Handlers) BuildContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("prompt argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", h.app.Config.TopK)

	text, err := h.app.Retriever.BuildAugmentedContext(ctx, prompt, topK)
	if err != nil {
		return toolError("building context failed", err, ""), nil
	}
	return mcp.NewToolResultText(text), nil
}

// ResetIndex handles the reset_index tool
func (h *Handlers) ResetIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.app.Retriever.Reset(ctx); err != nil {
		return toolError("reset failed", err, ""), nil
	}
	return jsonResult(map[string]interface{}{"reset": true})
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.app.Stats(ctx)
	if err != nil {
		return toolError("loading index failed", err, ""), nil
	}
	return jsonResult(stats)
}

func toolError(msg string, err error, suffix string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s [%s]: %v%s", msg, models.ErrorKind(err), err, suffix))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

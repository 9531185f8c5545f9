// ABOUTME: Tests for MCP tool handlers against a temporary vault and fake embeddings API
// ABOUTME: Checks argument validation, JSON payloads, and error kinds in tool errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/vault-assistant/internal/app"
	"github.com/harper/vault-assistant/internal/config"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	vocab := []string{"apple", "pear", "plum"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		text := strings.Join(req.Input, " ")
		var parts []string
		for _, word := range vocab {
			parts = append(parts, fmt.Sprint(strings.Count(text, word)))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[%s]}]}`, strings.Join(parts, ","))
	}))
	t.Cleanup(server.Close)

	root := t.TempDir()
	notes := map[string]string{
		"fruit/apple.md": "apple apple",
		"fruit/pear.md":  "pear",
		"plum.md":        "plum and apple",
	}
	for rel, text := range notes {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.OpenAIKey = "test-key"
	cfg.OpenAIBaseURL = server.URL
	cfg.RetryDelay = time.Millisecond
	cfg.VaultRoot = root
	cfg.IndexPath = filepath.Join(t.TempDir(), "index.json")

	a, err := app.New(cfg)
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	return NewHandlers(a)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", result.Content[0])
	return ""
}

func TestIndexThenSearch(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	result, err := h.IndexFolder(ctx, callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("IndexFolder returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("IndexFolder tool error: %s", resultText(t, result))
	}

	var report indexResponse
	if err := json.Unmarshal([]byte(resultText(t, result)), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Documents != 3 || report.Succeeded != 3 || len(report.Failed) != 0 || report.RunID == "" {
		t.Errorf("report = %+v", report)
	}

	result, _ = h.FindSimilarNotes(ctx, callRequest(map[string]any{"text": "pear", "max_results": 2}))
	if result.IsError {
		t.Fatalf("FindSimilarNotes tool error: %s", resultText(t, result))
	}

	var found struct {
		Notes []struct {
			NotePath     string  `json:"note_path"`
			NoteFilename string  `json:"note_filename"`
			Score        float64 `json:"score"`
		} `json:"notes"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &found); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if found.Count != 2 || found.Notes[0].NotePath != "fruit/pear.md" || found.Notes[0].NoteFilename != "pear" {
		t.Errorf("found = %+v", found)
	}

	result, _ = h.BuildContext(ctx, callRequest(map[string]any{"prompt": "apple", "top_k": 1}))
	if result.IsError {
		t.Fatalf("BuildContext tool error: %s", resultText(t, result))
	}
	if got := resultText(t, result); got != "apple apple" {
		t.Errorf("context = %q", got)
	}

	result, _ = h.IndexStats(ctx, callRequest(nil))
	if !strings.Contains(resultText(t, result), `"records": 3`) {
		t.Errorf("stats = %s", resultText(t, result))
	}
}

func TestRequiredArguments(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		want string
	}{
		{"find_similar_notes", h.FindSimilarNotes, "text argument is required"},
		{"build_context", h.BuildContext, "prompt argument is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.call(ctx, callRequest(map[string]any{}))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError || !strings.Contains(resultText(t, result), tt.want) {
				t.Errorf("result = %+v", result)
			}
		})
	}
}

func TestEmptyIndexError(t *testing.T) {
	h := newTestHandlers(t)

	result, _ := h.FindSimilarNotes(context.Background(), callRequest(map[string]any{"text": "apple"}))
	if !result.IsError {
		t.Fatal("expected a tool error for an empty index")
	}
	if text := resultText(t, result); !strings.Contains(text, "[EmptyIndexError]") {
		t.Errorf("error should name its kind: %s", text)
	}
}

func TestResetIndex(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	if result, _ := h.IndexFolder(ctx, callRequest(map[string]any{"folder": "fruit"})); result.IsError {
		t.Fatalf("IndexFolder tool error: %s", resultText(t, result))
	}
	if result, _ := h.ResetIndex(ctx, callRequest(nil)); result.IsError {
		t.Fatalf("ResetIndex tool error: %s", resultText(t, result))
	}

	result, _ := h.BuildContext(ctx, callRequest(map[string]any{"prompt": "apple"}))
	if !result.IsError || !strings.Contains(resultText(t, result), "EmptyIndexError") {
		t.Errorf("expected empty index after reset, got %s", resultText(t, result))
	}
}

func TestIndexFolderBadScope(t *testing.T) {
	h := newTestHandlers(t)

	result, _ := h.IndexFolder(context.Background(), callRequest(map[string]any{"folder": "../elsewhere"}))
	if !result.IsError || !strings.Contains(resultText(t, result), "[ConfigurationError]") {
		t.Errorf("result = %s", resultText(t, result))
	}
}

func TestRegisterTools(t *testing.T) {
	h := newTestHandlers(t)
	server := mcpserver.NewMCPServer("test", "0.0.0")

	handlers := RegisterTools(server, h.app)
	if handlers == nil || handlers.app != h.app {
		t.Fatal("RegisterTools should return handlers bound to the engine")
	}
}

func TestFindSimilarNotesDefaultsToTopK(t *testing.T) {
	h := newTestHandlers(t)
	h.app.Config.TopK = 1
	ctx := context.Background()

	if result, _ := h.IndexFolder(ctx, callRequest(map[string]any{})); result.IsError {
		t.Fatalf("IndexFolder tool error: %s", resultText(t, result))
	}

	result, _ := h.FindSimilarNotes(ctx, callRequest(map[string]any{"text": "apple pear plum"}))
	if result.IsError {
		t.Fatalf("FindSimilarNotes tool error: %s", resultText(t, result))
	}
	var found struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &found); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if found.Count != 1 {
		t.Errorf("count = %d, want the configured top K of 1", found.Count)
	}
}

// ABOUTME: Wires configuration into the embedder, index store, and orchestrators
// ABOUTME: Shared by the CLI commands and the MCP server so both run the same engine
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/harper/vault-assistant/internal/charm"
	"github.com/harper/vault-assistant/internal/config"
	"github.com/harper/vault-assistant/internal/core"
	"github.com/harper/vault-assistant/internal/llm"
	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
	"github.com/harper/vault-assistant/internal/storage"
	"github.com/harper/vault-assistant/internal/vault"
)

// App holds the engine components built from one configuration
type App struct {
	Config    *config.Config
	Store     storage.VectorStore
	Indexer   *core.Indexer
	Retriever *core.Retriever
	Assistant *core.Assistant

	charm  *charm.Client
	logger *log.Logger
}

// Stats summarizes the stored index
type Stats struct {
	Backend   string `json:"backend"`
	Location  string `json:"location"`
	Records   int    `json:"records"`
	Documents int    `json:"documents"`
	Dimension int    `json:"dimension"`
}

// New builds the engine for cfg. Provider credentials are not checked here;
// indexing reports a missing key as a configuration error.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chunker, err := core.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		logger: logging.New("App"),
	}

	if err := a.openStore(); err != nil {
		return nil, err
	}

	client := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	queryEmbedder := llm.NewCachedEmbedder(client, cfg.CacheSize, cfg.CacheTTL)

	a.Indexer = core.NewIndexer(chunker, client, a.Store, cfg.Concurrency)
	a.Retriever = core.NewRetriever(queryEmbedder, a.Store, cfg.ContextSeparator)
	a.Assistant = core.NewAssistant(a.Retriever, client)

	return a, nil
}

func (a *App) openStore() error {
	switch a.Config.IndexBackend {
	case config.BackendCharm:
		client, err := charm.GetClient(&charm.Config{
			Host:     a.Config.CharmHost,
			DBName:   a.Config.CharmDBName,
			AutoSync: a.Config.AutoSync,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", models.ErrIO, err)
		}
		a.charm = client
		a.Store = storage.NewCharmStore(client, IndexName(a.Config.VaultRoot))
	default:
		store, err := storage.NewFileStore(a.Config.IndexPath)
		if err != nil {
			return err
		}
		a.Store = store
	}
	return nil
}

// Charm returns the Charm client when the charm backend is in use
func (a *App) Charm() *charm.Client {
	return a.charm
}

// Close releases the store
func (a *App) Close() error {
	if a.charm != nil {
		charm.ResetGlobalClient()
		a.charm = nil
	}
	return nil
}

// OpenVault opens the configured vault root
func (a *App) OpenVault() (*vault.Vault, error) {
	return vault.Open(a.Config.VaultRoot, a.Config.Extensions)
}

// Index loads every document under scope and indexes it. With reset the stored
// index is replaced by the new records once embedding completes; a failed run
// leaves it as it was.
func (a *App) Index(ctx context.Context, scope string, reset bool) (models.IndexingReport, error) {
	v, err := a.OpenVault()
	if err != nil {
		return models.IndexingReport{}, err
	}

	docs, err := v.LoadScope(scope)
	if err != nil {
		return models.IndexingReport{}, err
	}
	a.logger.Debug("loaded documents", "root", v.Root(), "scope", scope, "documents", len(docs))

	if reset {
		return a.Indexer.ReindexFolder(ctx, docs)
	}
	return a.Indexer.IndexFolder(ctx, docs)
}

// Stats reports the size of the stored index
func (a *App) Stats(ctx context.Context) (Stats, error) {
	idx, err := a.Store.LoadAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	docs := make(map[string]bool)
	for _, rec := range idx {
		docs[rec.SourceDocID] = true
	}

	stats := Stats{
		Backend:   a.Config.IndexBackend,
		Records:   len(idx),
		Documents: len(docs),
		Dimension: idx.Dimension(),
	}
	switch s := a.Store.(type) {
	case *storage.FileStore:
		stats.Location = s.Path()
	case *storage.CharmStore:
		stats.Location = s.Key()
	}
	return stats, nil
}

// IndexName derives the Charm index name from the vault root directory
func IndexName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) {
		return "default"
	}
	return name
}

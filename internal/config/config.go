// ABOUTME: Centralized configuration for the vault assistant
// ABOUTME: Defaults, then an optional YAML file, then environment variables, with validation
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/vault-assistant/internal/models"
)

// Index storage backends
const (
	BackendFile  = "file"
	BackendCharm = "charm"
)

// Config holds all configuration for the assistant
type Config struct {
	// OpenAI settings
	OpenAIKey      string        `yaml:"openai_api_key"`
	OpenAIBaseURL  string        `yaml:"openai_base_url"`
	EmbeddingModel string        `yaml:"embedding_model"`
	ChatModel      string        `yaml:"chat_model"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	// Vault settings
	VaultRoot  string   `yaml:"vault_root"`
	Extensions []string `yaml:"extensions"`

	// Chunking and retrieval
	ChunkSize        int    `yaml:"chunk_size"`
	ChunkOverlap     int    `yaml:"chunk_overlap"`
	TopK             int    `yaml:"top_k"`
	Concurrency      int    `yaml:"concurrency"`
	ContextSeparator string `yaml:"context_separator"`

	// Index storage
	IndexBackend string `yaml:"index_backend"`
	IndexPath    string `yaml:"index_path"`
	CharmHost    string `yaml:"charm_host"`
	CharmDBName  string `yaml:"charm_db"`
	AutoSync     bool   `yaml:"auto_sync"`

	// Query embedding cache
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		EmbeddingModel:   "text-embedding-3-small",
		ChatModel:        "gpt-4o-mini",
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryDelay:       2 * time.Second,
		VaultRoot:        ".",
		Extensions:       []string{".md", ".txt"},
		ChunkSize:        500,
		ChunkOverlap:     50,
		TopK:             10,
		Concurrency:      4,
		ContextSeparator: "\n\n---\n\n",
		IndexBackend:     BackendFile,
		IndexPath:        filepath.Join(DefaultDataDir(), "index.json"),
		CharmHost:        "cloud.charm.sh",
		CharmDBName:      "vault-assistant",
		AutoSync:         true,
		CacheSize:        256,
		CacheTTL:         10 * time.Minute,
		LogLevel:         "info",
	}
}

// Load reads configuration from defaults, the config file, and environment variables
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := configFilePath()
	if path != "" {
		err := cfg.mergeFile(path)
		if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("%w: config file: %w", models.ErrConfiguration, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: VAULT_CHUNK_SIZE must be positive, got %d", models.ErrConfiguration, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: VAULT_CHUNK_OVERLAP must be in [0, %d), got %d",
			models.ErrConfiguration, c.ChunkSize, c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: VAULT_TOP_K must be positive, got %d", models.ErrConfiguration, c.TopK)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: VAULT_CONCURRENCY must be positive, got %d", models.ErrConfiguration, c.Concurrency)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("%w: OPENAI_MAX_RETRIES must be 0-10, got %d", models.ErrConfiguration, c.MaxRetries)
	}
	switch c.IndexBackend {
	case BackendFile:
		if c.IndexPath == "" {
			return fmt.Errorf("%w: VAULT_INDEX_PATH is required for the file backend", models.ErrConfiguration)
		}
	case BackendCharm:
		if c.CharmDBName == "" {
			return fmt.Errorf("%w: CHARM_DB is required for the charm backend", models.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: VAULT_INDEX_BACKEND must be %q or %q, got %q",
			models.ErrConfiguration, BackendFile, BackendCharm, c.IndexBackend)
	}
	return nil
}

// DefaultDataDir returns the data directory following the XDG base directory layout
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "vault-assistant")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "vault-assistant")
}

// configFilePath returns the config file to read and whether the user named it explicitly
func configFilePath() (string, bool) {
	if p := os.Getenv("VAULT_CONFIG"); p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "vault-assistant", "config.yaml"), false
}

// mergeFile overlays the YAML file at path onto c. Keys absent from the file keep their value.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.EmbeddingModel = getEnv("VAULT_EMBEDDING_MODEL", c.EmbeddingModel)
	c.ChatModel = getEnv("VAULT_CHAT_MODEL", c.ChatModel)
	c.Timeout = getEnvDuration("OPENAI_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", c.RetryDelay)

	c.VaultRoot = getEnv("VAULT_ROOT", c.VaultRoot)
	c.Extensions = getEnvList("VAULT_EXTENSIONS", c.Extensions)

	c.ChunkSize = getEnvInt("VAULT_CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("VAULT_CHUNK_OVERLAP", c.ChunkOverlap)
	c.TopK = getEnvInt("VAULT_TOP_K", c.TopK)
	c.Concurrency = getEnvInt("VAULT_CONCURRENCY", c.Concurrency)

	c.IndexBackend = getEnv("VAULT_INDEX_BACKEND", c.IndexBackend)
	c.IndexPath = getEnv("VAULT_INDEX_PATH", c.IndexPath)
	c.CharmHost = getEnv("CHARM_HOST", c.CharmHost)
	c.CharmDBName = getEnv("CHARM_DB", c.CharmDBName)
	c.AutoSync = getEnvBool("CHARM_AUTO_SYNC", c.AutoSync)

	c.CacheSize = getEnvInt("VAULT_CACHE_SIZE", c.CacheSize)
	c.CacheTTL = getEnvDuration("VAULT_CACHE_TTL", c.CacheTTL)
	c.LogLevel = getEnv("VAULT_LOG_LEVEL", c.LogLevel)
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

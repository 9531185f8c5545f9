// ABOUTME: Charm KV client wrapper for cloud-synced index storage
// ABOUTME: Opens the KV with automatic SSH key auth and exposes sync and account helpers
package charm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// IndexPrefix namespaces vector index keys
const IndexPrefix = "index:"

// ErrNotFound is returned by Get for a key that has never been set
var ErrNotFound = errors.New("key not found")

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

var (
	globalClient *Client
	globalConfig Config
	clientMu     sync.Mutex
)

// Client wraps charm KV for storage operations
type Client struct {
	kv     *kv.KV
	config *Config
	mu     sync.Mutex
}

// GetClient returns the shared client for cfg, opening it on first use or
// after it was closed or the config changed
func GetClient(cfg *Config) (*Client, error) {
	clientMu.Lock()
	defer clientMu.Unlock()

	if globalClient != nil && globalClient.kv != nil && globalConfig == *cfg {
		return globalClient, nil
	}
	if globalClient != nil {
		_ = globalClient.Close()
	}

	c, err := NewClient(cfg)
	if err != nil {
		globalClient = nil
		return nil, err
	}
	globalClient = c
	globalConfig = *cfg
	return c, nil
}

// ResetGlobalClient closes and forgets the shared client
func ResetGlobalClient() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if globalClient != nil {
		_ = globalClient.Close()
	}
	globalClient = nil
}

// NewClient creates a new charm client with the given config
func NewClient(cfg *Config) (*Client, error) {
	if cfg.DBName == "" {
		return nil, fmt.Errorf("charm database name is required")
	}

	// kv reads the host from the environment
	if cfg.Host != "" {
		os.Setenv("CHARM_HOST", cfg.Host)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil
		return err
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Set stores a value with the given key
func (c *Client) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Get retrieves a value by key. Returns ErrNotFound for unknown keys.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return data, nil
}

// Delete removes a key
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// ListKeys returns all keys with the given prefix
func (c *Client) ListKeys(prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var result []string
	for _, key := range keys {
		keyStr := string(key)
		if strings.HasPrefix(keyStr, prefix) {
			result = append(result, keyStr)
		}
	}
	return result, nil
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	return c.kv.Sync()
}

// Reset wipes all local data, every index included
func (c *Client) Reset() error {
	return c.kv.Reset()
}

// GetAuthorizedKeys returns the list of linked devices/keys
func (c *Client) GetAuthorizedKeys() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.AuthorizedKeys()
}

// IndexKey generates the key holding the named vector index
func IndexKey(name string) string {
	return IndexPrefix + name
}

// IndexName is the inverse of IndexKey
func IndexName(key string) string {
	return strings.TrimPrefix(key, IndexPrefix)
}

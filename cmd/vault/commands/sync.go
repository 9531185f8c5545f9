// ABOUTME: Sync commands for Charm cloud synchronization of the index
// ABOUTME: Provides status, now, indexes, wipe, and keys management
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/vault-assistant/internal/charm"
	"github.com/harper/vault-assistant/internal/config"
	"github.com/harper/vault-assistant/internal/models"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

With VAULT_INDEX_BACKEND=charm the index lives in Charm KV and syncs
automatically across devices linked to the same Charm account via
SSH keys.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncIndexesCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())

	return cmd
}

// charmClient opens the Charm KV named in the configuration
func charmClient() (*charm.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := charm.GetClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to connect to Charm: %w", models.ErrIO, err)
	}
	return client, cfg, nil
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := charmClient()
			if err != nil {
				return err
			}
			defer charm.ResetGlobalClient()

			out := cmd.OutOrStdout()
			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintln(out, "Run 'vault sync keys' to check your SSH keys")
				return nil
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", cfg.CharmHost)
			fmt.Fprintf(out, "Database: %s\n", cfg.CharmDBName)
			fmt.Fprintf(out, "Backend in use: %s\n", cfg.IndexBackend)

			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := charmClient()
			if err != nil {
				return err
			}
			defer charm.ResetGlobalClient()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Syncing...")
			if err := client.Sync(); err != nil {
				return fmt.Errorf("%w: sync failed: %w", models.ErrIO, err)
			}

			fmt.Fprintln(out, "Sync complete")
			return nil
		},
	}
}

func newSyncIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "List the indexes stored in Charm",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := charmClient()
			if err != nil {
				return err
			}
			defer charm.ResetGlobalClient()

			keys, err := client.ListKeys(charm.IndexPrefix)
			if err != nil {
				return fmt.Errorf("%w: %w", models.ErrIO, err)
			}

			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				fmt.Fprintln(out, "No indexes found")
				return nil
			}
			for _, key := range keys {
				fmt.Fprintln(out, charm.IndexName(key))
			}
			return nil
		},
	}
}

func newSyncWipeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all local data (nuclear option)",
		Long: `Completely wipe all local Charm data.

WARNING: This deletes all locally cached indexes. Your cloud data
remains intact and will be re-synced on next access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !confirm {
				fmt.Fprintln(out, "This will wipe ALL local data!")
				fmt.Fprintln(out, "Run with --confirm to proceed")
				return nil
			}

			client, _, err := charmClient()
			if err != nil {
				return err
			}
			defer charm.ResetGlobalClient()

			if err := client.Reset(); err != nil {
				return fmt.Errorf("%w: failed to wipe data: %w", models.ErrIO, err)
			}

			fmt.Fprintln(out, "Local data wiped successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the wipe operation")

	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List authorized SSH keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := charmClient()
			if err != nil {
				return err
			}
			defer charm.ResetGlobalClient()

			keys, err := client.GetAuthorizedKeys()
			if err != nil {
				return fmt.Errorf("failed to get authorized keys: %w", err)
			}

			out := cmd.OutOrStdout()
			if keys == "" {
				fmt.Fprintln(out, "No authorized keys found")
				return nil
			}

			fmt.Fprintln(out, "Authorized SSH keys:")
			fmt.Fprintln(out, keys)

			return nil
		},
	}
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/daybook-app/daybook/internal/storage"
	"github.com/spf13/cobra"
)

// openBackend opens a storage backend by name. Tests replace it.
var openBackend = storage.NewForBackend

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	var fromFlag, toFlag string
	var dryRun bool

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy stored data between storage backends",
		Long: `Copy every stored document from one storage backend to another.

USAGE:
    daybook migrate --from file --to sqlite [--dry-run]

Set storage_backend in the configuration afterwards to switch to the new backend.
Use --dry-run to list the documents without writing them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := strings.ToLower(strings.TrimSpace(fromFlag))
			to := strings.ToLower(strings.TrimSpace(toFlag))
			if from == to {
				return fmt.Errorf("migrate: source and destination are both %q", from)
			}

			stateDir, err := storage.StateDir()
			if err != nil {
				return err
			}
			return storage.WithLock(filepath.Join(stateDir, ".migrate.lock"), func() error {
				src, err := openBackend(from)
				if err != nil {
					return fmt.Errorf("migrate: open %s: %w", from, err)
				}
				defer src.Close()

				if dryRun {
					keys, err := src.Keys()
					if err != nil {
						return err
					}
					for _, key := range keys {
						cmd.Printf("would copy %s\n", key)
					}
					cmd.Printf("dry run: %d documents in %s\n", len(keys), from)
					return nil
				}

				dst, err := openBackend(to)
				if err != nil {
					return fmt.Errorf("migrate: open %s: %w", to, err)
				}
				defer dst.Close()

				copied, err := storage.Copy(dst, src)
				if err != nil {
					return fmt.Errorf("migrate: copied %d documents before failing: %w", copied, err)
				}
				cmd.Printf("migration completed: copied %d documents from %s to %s\n", copied, from, to)
				return nil
			})
		},
	}
	migrateCmd.Flags().StringVar(&fromFlag, "from", storage.BackendFile, "Source backend: file or sqlite")
	migrateCmd.Flags().StringVar(&toFlag, "to", storage.BackendSQLite, "Destination backend: file or sqlite")
	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List documents without writing them")
	return migrateCmd
}

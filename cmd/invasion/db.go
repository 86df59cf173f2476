package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
)

var dbCatalogPath string

// dbCmd manages the catalog schema
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the run catalog database",
	Long: `Migration verbs for the run catalog. Commands that use the catalog
migrate it automatically; these verbs exist for rollbacks and for
inspecting the schema version.`,
}

var dbUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runDBUp,
}

var dbDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back one migration",
	RunE:  runDBDown,
}

var dbVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE:  runDBVersion,
}

// openCatalogForMigration opens the catalog without auto-migrating, so the
// verbs act on the schema as it stands.
func openCatalogForMigration() (*catalog.Store, error) {
	path := dbCatalogPath
	if path == "" {
		path = cfg.GetCatalogPath()
	}

	store, err := catalog.OpenNoMigrate(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return store, nil
}

func runDBUp(cmd *cobra.Command, args []string) error {
	store, err := openCatalogForMigration()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.MigrateUp(); err != nil {
		return err
	}

	version, dirty, err := store.MigrateVersion()
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

func runDBDown(cmd *cobra.Command, args []string) error {
	store, err := openCatalogForMigration()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.MigrateDown(); err != nil {
		return err
	}

	version, dirty, err := store.MigrateVersion()
	if err != nil {
		return err
	}
	slog.Info("rolled back one migration", "version", version, "dirty", dirty)
	return nil
}

func runDBVersion(cmd *cobra.Command, args []string) error {
	store, err := openCatalogForMigration()
	if err != nil {
		return err
	}
	defer store.Close()

	version, dirty, err := store.MigrateVersion()
	if err != nil {
		return err
	}
	fmt.Printf("version: %d (dirty: %v)\n", version, dirty)
	return nil
}

func init() {
	dbCmd.PersistentFlags().StringVar(&dbCatalogPath, "catalog", "", "Catalog database path (default from config, else \"runs.db\")")
	dbCmd.AddCommand(dbUpCmd, dbDownCmd, dbVersionCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itchan-dev/blogapi/backend/internal/setup"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Run all pending migrations against the configured storage and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := cmd.Context()

	cmd.Println("Connecting to storage...")
	storage, err := setup.NewStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to storage: %w", err)
	}
	defer storage.Cleanup()

	cmd.Println("Running migrations...")
	if err := storage.RunMigrations(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}

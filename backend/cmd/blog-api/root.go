package main

import (
	"github.com/spf13/cobra"

	"github.com/itchan-dev/blogapi/shared/config"
	"github.com/itchan-dev/blogapi/shared/logger"
)

// Global flags available to all subcommands.
var configFolder string

// NewRootCmd creates the root command for the blog API CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "blog-api",
		Short:         "Blog API with accounts and owner-scoped posts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// loadConfig reads config and configures the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFolder)
	if err != nil {
		return nil, err
	}
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)
	return cfg, nil
}

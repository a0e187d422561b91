package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/entitystore/internal/cli"
	"github.com/aretw0/entitystore/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "entitystore",
	Short: "entitystore is an in-memory store of normalized entity collections",
	Long: `entitystore keeps collections of entities keyed by id and applies
"[<path>] <operation>" actions to them atomically. Collections are declared in a
YAML config file; without one, a seeded todo collection is served.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

// setup loads the config file and builds the logger, applying flag overrides.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.CreateLogger(cfg.LogLevel, debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

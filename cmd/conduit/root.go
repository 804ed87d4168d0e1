package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/conduit/internal/config"
	"github.com/aretw0/conduit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	settings = config.Default()
	logger   = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Conduit checks visual data pipelines before they run",
	Long: `Conduit loads pipeline documents (JSON, YAML or HCL), derives the ports of
every node and checks that the pipeline is a connected directed acyclic graph.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the conduit config file")
	rootCmd.PersistentFlags().String("endpoint", "", "Base URL of the verdict service")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Submission timeout (default 15s)")
}

// loadSettings reads the config file and applies the flags the user set.
func loadSettings(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	settings = cfg
	logger = logging.New(level)
	slog.SetDefault(logger)
	return nil
}

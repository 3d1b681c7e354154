/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ssargent/bytekit/pkg/config"
	"github.com/ssargent/bytekit/pkg/di"
	"github.com/ssargent/bytekit/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bytekit",
	Short: "bytekit - byte order, text and compression utilities",
	Long: `bytekit swaps integer byte order, normalizes values to their canonical
text form, and compresses buffers into self-describing frames that can be
kept on disk or in a local frame store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := logging.New(logging.Options{
			App:    "bytekit",
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Out:    cmd.ErrOrStderr(),
		})
		return container.Configure(cfg, logger)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		cfg := container.Config()
		gatherer := container.Gatherer()
		if gatherer == nil || cfg.Metrics.Textfile == "" {
			return nil
		}
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, gatherer); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	},
}

// loadConfig reads the --config file. A missing file is only an error when
// the flag was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if !config.ConfigExists(path) {
		if cmd.Flags().Changed("config") {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/bytekit/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the frame store (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error, off (overrides config)")
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bytekit/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default bytekit configuration file.

Examples:
  bytekit init
  bytekit init --config ./bytekit.yaml --data-dir ./frames --algorithm zstd`,
	// The existing config may be the thing being replaced, so it is not loaded.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		algorithm, _ := cmd.Flags().GetString("algorithm")
		force, _ := cmd.Flags().GetBool("force")

		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		cfg, err := initializeConfig(path, dataDir, algorithm, force)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Data directory: %s\n", cfg.DataDir)
		fmt.Fprintf(cmd.OutOrStdout(), "Compression: %s\n", cfg.Compression.Algorithm)
		return nil
	},
}

func initializeConfig(path, dataDir, algorithm string, force bool) (*config.Config, error) {
	if config.ConfigExists(path) && !force {
		return nil, fmt.Errorf("config already exists at %s, use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if algorithm != "" {
		cfg.Compression.Algorithm = algorithm
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("algorithm", "", "Compression algorithm: zlib, snappy, zstd or s2")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

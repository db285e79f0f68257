/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/itemcodec/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the itemcodec configuration file",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create a configuration file with default settings and a freshly
generated API key.

Examples:
  itemcodec config init
  itemcodec config init --config ./itemcodec.yaml --data-dir ./data --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		force, _ := cmd.Flags().GetBool("force")

		return runConfigInit(cmd.OutOrStdout(), configPath, cfg.DataDir, force)
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// runConfigInit writes a bootstrap configuration to configPath
func runConfigInit(out io.Writer, configPath, dataDir string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
	}

	created, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration created at %s\n", configPath)
	fmt.Fprintf(out, "Data directory: %s\n", created.DataDir)
	fmt.Fprintf(out, "API key: %s\n", created.APIKey)
	return nil
}

// runConfigShow prints c as YAML with the API key masked
func runConfigShow(out io.Writer, c *config.Config) error {
	shown := *c
	if len(shown.APIKey) > 8 {
		shown.APIKey = shown.APIKey[:8] + "..."
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

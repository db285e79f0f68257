/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/itemcodec/pkg/config"
	"github.com/ssargent/itemcodec/pkg/di"
	"github.com/ssargent/itemcodec/pkg/logging"
)

var (
	container *di.Container
	cfg       *config.Config
	logger    *logrus.Logger
)

// SetContainer injects the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itemcodec",
	Short: "itemcodec - item record encoder",
	Long: `itemcodec encodes game item records (name, price, weight) into compact
binary files and decodes them back. Items can also be kept in a local
catalog and served over a REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return nil
	},
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
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.config/itemcodec/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the item catalog")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text or json)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Item format written by encode and demo (legacy or framed)")
}

// loadConfig reads the config file when present, then applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	loaded := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		var err error
		loaded, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else if explicit && cmd.Name() != "init" {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		loaded.DataDir = dataDir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		loaded.Logging.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		loaded.Logging.Format = format
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		loaded.Codec.Format = format
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// openCatalog opens the catalog under the configured data directory
func openCatalog() (catalogCloser, error) {
	if container == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	catalog, err := container.OpenCatalog(cfg.CatalogPath())
	if err != nil {
		return nil, err
	}
	logger.WithField("path", cfg.CatalogPath()).Debug("opened catalog")
	return catalog, nil
}

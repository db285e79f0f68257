/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/itemcodec/pkg/api"
	"github.com/ssargent/itemcodec/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the itemcodec REST API server. It serves the item catalog under
/api/v1/items, the stateless codec under /api/v1/codec and Prometheus
metrics under /metrics.

Examples:
  itemcodec serve
  itemcodec serve --port 9000 --api-key mysecretkey`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withCatalog(func(catalog catalogCloser) error {
			return runServe(ctx, cfg, catalog)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key required in X-API-Key (empty disables authentication)")
}

// runServe serves catalog until ctx is cancelled
func runServe(ctx context.Context, c *config.Config, catalog api.IItemCatalog) error {
	if container == nil {
		return fmt.Errorf("dependency container not initialized")
	}
	if c.APIKey == "" {
		logger.Warn("no API key configured, authentication is disabled")
	}

	serverConfig := api.ServerConfig{
		Bind:            c.Bind,
		Port:            c.Port,
		APIKey:          c.APIKey,
		Format:          c.ItemFormat(),
		InitialCapacity: c.Codec.InitialCapacity,
	}

	starter := container.GetServerFactory().CreateServerStarter()
	return starter.StartServer(ctx, catalog, serverConfig, logger)
}

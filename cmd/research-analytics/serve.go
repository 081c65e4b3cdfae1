// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-analytics/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the functions over HTTP",
	Long: `Serve starts the HTTP binding:

  GET  /api/functions         function descriptions (?format=openai for tool definitions)
  POST /api/invoke            {"function": name, "parameters": {...}}
  POST /api/invoke/batch      {"calls": [...]}
  POST /api/chat              {"message": text}, keyword suggestions
  GET  /health, GET /metrics

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := buildRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	return httpapi.New(reg, cfg.Server, cfg.Batch).Run(ctx)
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default 8080, or $PORT)")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

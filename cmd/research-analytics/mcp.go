// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-analytics/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the functions as MCP tools over stdio",
	Long: `MCP serves every function as a Model Context Protocol tool on stdin and
stdout, for agents that launch research-analytics as a subprocess. Logs go to
stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := buildRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		srv, err := mcpserver.New(reg, version)
		if err != nil {
			return err
		}
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

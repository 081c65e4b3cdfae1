// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-analytics/internal/registry"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Invoke a file of calls and print one envelope per call",
	Long: `Batch reads calls from a YAML or JSON file and runs them independently.
Results are printed as {"results": [...]} in file order; a failed call does
not stop or undo the others.

File format:
  calls:
    - function: getEntity
      parameters: {entityType: author, entityId: auth_001}
    - function: getTopEntities
      parameters: {entityType: journal, metric: sjr, limit: 2}`,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return fmt.Errorf("--file is required")
	}
	calls, err := registry.ReadCallFile(file)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(calls) == 0 {
		return fmt.Errorf("%s: no calls", file)
	}
	if cfg.Batch.MaxItems > 0 && len(calls) > cfg.Batch.MaxItems {
		return fmt.Errorf("%s: %d calls exceeds batch.max_items %d", file, len(calls), cfg.Batch.MaxItems)
	}

	var results []registry.Envelope
	if c := remoteClient(cmd, cfg); c != nil {
		if results, err = c.InvokeBatch(cmd.Context(), calls); err != nil {
			return err
		}
	} else {
		reg, err := buildRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		results = reg.InvokeBatch(cmd.Context(), calls)
	}

	if err := writeJSON(cmd.OutOrStdout(), registry.BatchResponse{Results: results}); err != nil {
		return err
	}
	failed := 0
	for _, env := range results {
		if !env.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d call(s) failed", failed, len(results))
	}
	return nil
}

func init() {
	batchCmd.Flags().String("file", "", "YAML or JSON file of calls")
	addRemoteFlags(batchCmd)

	rootCmd.AddCommand(batchCmd)
}

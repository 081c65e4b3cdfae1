// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-analytics/internal/dataset"
	"github.com/pdiddy/research-analytics/pkg/types"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect and export dataset snapshots",
	Long: `Dataset works with the data the functions read: the built-in fixture or a
snapshot selected with --dataset. Snapshots are YAML (.yaml, .yml) or SQLite
(.db, .sqlite, .sqlite3) files.`,
}

var datasetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded dataset to a YAML or SQLite snapshot",
	RunE:  runDatasetExport,
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		return fmt.Errorf("--out is required")
	}
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = formatFromExt(outPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := dataset.LoadFile(cmd.Context(), cfg.Dataset.Path)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		err = d.WriteYAML(outPath)
	case "sqlite":
		err = d.WriteSQLite(cmd.Context(), outPath)
	default:
		return fmt.Errorf("unknown format %q: want yaml or sqlite", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s snapshot to %s\n", format, outPath)
	return nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

var datasetStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Validate the dataset and print entity counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, err := dataset.LoadFile(cmd.Context(), cfg.Dataset.Path)
		if err != nil {
			return err
		}

		source := cfg.Dataset.Path
		if source == "" {
			source = "built-in fixture"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dataset: %s\n", source)
		for _, t := range types.EntityTypes {
			fmt.Fprintf(out, "  %-12s %d\n", t, d.Len(t))
		}
		fmt.Fprintf(out, "  %-12s %d\n", "trends", len(d.Contents().Trends))
		return nil
	},
}

func init() {
	datasetExportCmd.Flags().String("format", "", "snapshot format: yaml or sqlite (default: from --out extension)")
	datasetExportCmd.Flags().String("out", "", "output file")

	datasetCmd.AddCommand(datasetExportCmd, datasetStatsCmd)
	rootCmd.AddCommand(datasetCmd)
}

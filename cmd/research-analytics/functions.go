// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-analytics/internal/registry"
	"github.com/pdiddy/research-analytics/internal/schema"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the available functions and their parameters",
	Long: `Functions prints every function with its parameter schema, in registration
order. --format json prints the introspection document served at
/api/functions; --format openai prints OpenAI function-calling tool
definitions.`,
	RunE: runFunctions,
}

func runFunctions(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if c := remoteClient(cmd, cfg); c != nil {
		if format == "openai" {
			return fmt.Errorf("--format openai is only available locally")
		}
		fns, err := c.Functions(cmd.Context())
		if err != nil {
			return err
		}
		return formatFunctions(out, fns, format)
	}

	reg, err := buildRegistry(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if format == "openai" {
		return writeJSON(out, reg.OpenAITools())
	}
	return formatFunctions(out, reg.Introspect(), format)
}

func formatFunctions(w io.Writer, fns []registry.FunctionDescription, format string) error {
	switch format {
	case "json":
		return writeJSON(w, fns)
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q: want table, json, or openai", format)
	}

	for i, fn := range fns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n  %s\n", fn.Name, fn.Description)
		for _, p := range fn.Parameters {
			fmt.Fprintf(w, "    %-12s %-8s %-9s %s%s\n", p.Name, p.Type, requirement(p), p.Description, enumHint(p))
		}
	}
	return nil
}

func requirement(p schema.FieldDescription) string {
	switch {
	case p.Required:
		return "required"
	case p.Default != nil:
		return fmt.Sprintf("=%v", p.Default)
	default:
		return "optional"
	}
}

func init() {
	functionsCmd.Flags().String("format", "table", "output format: table, json, or openai")
	addRemoteFlags(functionsCmd)

	rootCmd.AddCommand(functionsCmd)
}

// enumHint lists enum values for usage errors.
func enumHint(p schema.FieldDescription) string {
	if len(p.Enum) == 0 {
		return ""
	}
	return " (" + strings.Join(p.Enum, "|") + ")"
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-analytics/internal/registry"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke NAME",
	Short: "Invoke one function and print its envelope",
	Long: `Invoke validates --params against the function's schema, runs it, and
prints the JSON envelope. A null result means nothing matched and is not an
error. The command exits non-zero when the envelope reports a failure.

Example:
  research-analytics invoke compareEntities --params \
    '{"entityType":"author","entityIdA":"auth_001","entityIdB":"auth_002","metric":"citations"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoke,
}

func runInvoke(cmd *cobra.Command, args []string) error {
	params, err := paramsFromFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var env registry.Envelope
	if c := remoteClient(cmd, cfg); c != nil {
		if env, err = c.Invoke(cmd.Context(), args[0], params); err != nil {
			return err
		}
	} else {
		reg, err := buildRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		env = reg.Invoke(cmd.Context(), args[0], params)
	}

	if err := writeJSON(cmd.OutOrStdout(), env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%s failed: %s", args[0], env.Error.Code)
	}
	return nil
}

// paramsFromFlags reads --params, or --params-file when given.
func paramsFromFlags(cmd *cobra.Command) (map[string]any, error) {
	raw, _ := cmd.Flags().GetString("params")
	if file, _ := cmd.Flags().GetString("params-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading params file: %w", err)
		}
		raw = string(data)
	}
	if raw == "" {
		return map[string]any{}, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("--params is not a JSON object: %w", err)
	}
	return params, nil
}

func init() {
	invokeCmd.Flags().String("params", "", "parameters as a JSON object")
	invokeCmd.Flags().String("params-file", "", "read parameters from a JSON file")
	addRemoteFlags(invokeCmd)

	rootCmd.AddCommand(invokeCmd)
}

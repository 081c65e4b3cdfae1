// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-analytics/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest TEXT",
	Short: "Suggest function calls for a free-text question",
	Long: `Suggest matches keywords in TEXT ("compare", "trend", "top", "find",
"metrics", ...) against a fixed table and prints example calls that can be
passed to invoke. It is the CLI form of POST /api/chat.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reply := suggest.Suggest(strings.Join(args, " "))

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd.OutOrStdout(), reply)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, reply.Message)
		for _, s := range reply.Suggestions {
			params, err := json.Marshal(s.Parameters)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n  %s\n  research-analytics invoke %s --params '%s'\n", s.Description, s.Function, params)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().Bool("json", false, "output the reply as JSON")

	rootCmd.AddCommand(suggestCmd)
}

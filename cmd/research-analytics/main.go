// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-analytics CLI. It serves
// the analytics function registry over HTTP and MCP and invokes functions
// locally or against a remote server.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-analytics/internal/analytics"
	"github.com/pdiddy/research-analytics/internal/client"
	"github.com/pdiddy/research-analytics/internal/dataset"
	"github.com/pdiddy/research-analytics/internal/errors"
	"github.com/pdiddy/research-analytics/internal/logger"
	"github.com/pdiddy/research-analytics/internal/registry"
	"github.com/pdiddy/research-analytics/internal/secrets"
	"github.com/pdiddy/research-analytics/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// secretDefault returns fallback when set, or the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the research-analytics CLI.
var rootCmd = &cobra.Command{
	Use:   "research-analytics",
	Short: "Function-calling analytics over authors, institutions, and journals",
	Long: `research-analytics exposes six read-only analytics functions (getEntity,
searchEntities, getMetrics, compareEntities, getTrend, getTopEntities) over a
static dataset of authors, institutions, and journals.

Every function has a declared parameter schema. Callers discover functions
with "functions", call them with "invoke" or "batch", and agents reach them
over HTTP ("serve") or the Model Context Protocol ("mcp").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Logger.Debugw("loaded secrets", "keys", keys)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./research-analytics.yaml or ~/.config/research-analytics/research-analytics.yaml)")
	pf.String("dataset", "", "dataset snapshot (.yaml or .db); empty uses the built-in fixture")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("log-json", false, "write logs as JSON")

	viper.BindPFlag("dataset.path", pf.Lookup("dataset"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.json", pf.Lookup("log-json"))
}

func initConfig() {
	// A missing .env is fine; values may come from the real environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Logger.Warnw("could not load .env", "error", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-analytics")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-analytics"))
		}
	}

	setDefaults(types.DefaultConfig())

	viper.SetEnvPrefix("RESEARCH_ANALYTICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("server.port", "RESEARCH_ANALYTICS_SERVER_PORT", "PORT")

	if err := viper.ReadInConfig(); err == nil {
		logger.Logger.Infow("using config file", "path", viper.ConfigFileUsed())
	}
}

func setDefaults(cfg types.Config) {
	viper.SetDefault("server.port", cfg.Server.Port)
	viper.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	viper.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	viper.SetDefault("log.json", cfg.Log.JSON)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("dataset.path", cfg.Dataset.Path)
	viper.SetDefault("batch.max_items", cfg.Batch.MaxItems)
	viper.SetDefault("batch.concurrency", cfg.Batch.Concurrency)
	viper.SetDefault("client.timeout", cfg.Client.Timeout)
	viper.SetDefault("client.max_retries", cfg.Client.MaxRetries)
	viper.SetDefault("client.user_agent", cfg.Client.UserAgent)
}

// loadConfig decodes the merged viper settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoding configuration")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return cfg, nil
}

// buildRegistry loads the configured dataset and binds the functions to it.
func buildRegistry(ctx context.Context, cfg types.Config) (*registry.Registry, error) {
	d, err := dataset.LoadFile(ctx, cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("dataset loaded",
		"path", cfg.Dataset.Path,
		"authors", d.Len(types.EntityAuthor),
		"institutions", d.Len(types.EntityInstitution),
		"journals", d.Len(types.EntityJournal))
	return registry.NewDefault(analytics.New(d), registry.WithBatchConcurrency(cfg.Batch.Concurrency)), nil
}

// remoteClient returns a client for --remote, or nil when the flag is unset.
func remoteClient(cmd *cobra.Command, cfg types.Config) *client.Client {
	url, _ := cmd.Flags().GetString("remote")
	if url == "" {
		return nil
	}
	token, _ := cmd.Flags().GetString("token")
	return client.New(url, cfg.Client, secretDefault(secrets.KeyAPIToken, token))
}

func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().String("remote", "", "base URL of a research-analytics server (default: invoke locally)")
	cmd.Flags().String("token", "", "bearer token for --remote (default: .secrets/api-token)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

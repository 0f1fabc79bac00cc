// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the job-matcher CLI. It reads a
// résumé, collects listings from the configured sources and prints them
// ranked by relevance.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/logger"
	"github.com/pdiddy/job-matcher/internal/secrets"
	"github.com/pdiddy/job-matcher/pkg/types"
)

const envPrefix = "JOB_MATCHER"

// version is set at build time via ldflags.
var version = "dev"

var (
	// appConfig is the configuration resolved at startup.
	appConfig types.Config
	// loadedSecrets holds credentials from the secrets directory and environment.
	loadedSecrets map[string]string
	log           = zap.NewNop()
)

// rootCmd is the base command for the job-matcher CLI.
var rootCmd = &cobra.Command{
	Use:   "job-matcher",
	Short: "Rank job listings against a résumé",
	Long: `job-matcher reads a résumé, collects listings from job feeds, the Adzuna
API and careers pages, and ranks them by how closely they match. Scores are
calibrated percentages; each result names the résumé profile that matched.

Sources, filters and calibration come from job-matcher.yaml. Credentials are
read from the secrets directory (one file per key) or JOB_MATCHER_* variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		debug, _ := cmd.Flags().GetBool("debug")
		l, err := logger.New(jsonLogs, debug)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		log = l

		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		appConfig = cfg

		s, err := secrets.Load(cfg.SecretsDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = secrets.ApplyEnv(s, envPrefix)
		if len(loadedSecrets) > 0 {
			keys := make([]string, 0, len(loadedSecrets))
			for k := range loadedSecrets {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./job-matcher.yaml or ~/.config/job-matcher/job-matcher.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "write logs as JSON")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("job-matcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "job-matcher"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "reading config %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-matcher/internal/cache"
	"github.com/pdiddy/job-matcher/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the listing cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired entries from the SQLite listing cache",
	Long: `Prune removes expired batches from the SQLite cache file. Memory caches
live only for one run and Redis expires keys on its own, so prune only
applies to the sqlite backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Cache.Backend != types.CacheSQLite {
			fmt.Fprintf(cmd.OutOrStdout(), "cache backend is %q: nothing to prune\n", appConfig.Cache.Backend)
			return nil
		}
		ttl := appConfig.Cache.TTL
		if ttl <= 0 {
			ttl = cache.DefaultTTL
		}
		db, err := cache.OpenSQLite(appConfig.Cache.Path, ttl)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.Prune(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries from %s\n", n, appConfig.Cache.Path)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/job-matcher/internal/secrets"
	"github.com/pdiddy/job-matcher/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured listing sources",
	Long: `Sources prints every source from the configuration with its kind, its
filters and whether it will be queried. Adzuna sources need the adzuna-app-id
and adzuna-app-key secrets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSources(cmd.OutOrStdout(), appConfig, loadedSecrets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func printSources(w io.Writer, cfg types.Config, creds map[string]string) {
	if len(cfg.Sources) == 0 {
		fmt.Fprintln(w, "No sources configured.")
		return
	}
	have := secrets.Status(creds)

	fmt.Fprintf(w, "%-16s  %-7s  %-9s  %-24s  %s\n", "Name", "Kind", "State", "Filters", "Target")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, s := range cfg.Sources {
		state := "enabled"
		switch {
		case s.Disabled:
			state = "disabled"
		case s.Kind == types.SourceAdzuna && !(have[secrets.AdzunaAppID] && have[secrets.AdzunaAppKey]):
			state = "no creds"
		}
		target := s.URL
		if s.Kind == types.SourceAdzuna {
			target = "adzuna/" + s.Country
		}
		fmt.Fprintf(w, "%-16s  %-7s  %-9s  %-24s  %s\n",
			s.Name, s.Kind, state, strings.Join(s.Filters, ","), target)
	}
}

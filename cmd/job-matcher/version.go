package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of job-matcher",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "job-matcher %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

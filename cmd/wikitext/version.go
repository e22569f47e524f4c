package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/wikitext/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

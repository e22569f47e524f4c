package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/wikitext/internal/wikiurl"
)

var validateCmd = &cobra.Command{
	Use:   "validate <url>",
	Short: "Check that a URL points at a Wikipedia article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wikiurl.Validate(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <url>",
	Short: "Print the canonical form of a Wikipedia article URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wikiurl.Validate(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), wikiurl.Normalize(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd, normalizeCmd)
}

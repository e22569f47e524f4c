package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperifyio/wikitext/internal/app"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch an article and print its title and prose",
	Long: `Fetch validates and normalizes the URL, downloads the article with a single
GET request and writes the extracted title and body in the selected format.

Exit status is 2 when the article does not exist or has no usable prose, and
1 for any other failure.`,
	Example: `  wikitext fetch https://en.wikipedia.org/wiki/Alan_Turing
  wikitext fetch --format json -o turing.json "https://en.wikipedia.org/wiki/Alan Turing"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		a.Stdout = cmd.OutOrStdout()
		return a.Fetch(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

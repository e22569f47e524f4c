// Command wikitext fetches a Wikipedia article and prints its plain-text prose.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/wikitext/internal/app"
	"github.com/hyperifyio/wikitext/internal/render"
	"github.com/hyperifyio/wikitext/internal/scrape"
)

// cfg is resolved once per invocation in PersistentPreRunE.
var cfg app.Config

var rootCmd = &cobra.Command{
	Use:   "wikitext",
	Short: "Extract clean plain text from a Wikipedia article",
	Long: `wikitext validates and normalizes a Wikipedia article URL, downloads the
page and prints the article prose with tables, reference markers, side panels,
styles and scripts removed.

Configuration precedence: flags, then WIKITEXT_* environment variables
(including .env and .env.local), then the --config file, then defaults.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := app.LoadEnvFiles(app.DefaultEnvFiles...); err != nil {
			return fmt.Errorf("load env files: %w", err)
		}
		resolved, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		cfg = resolved
		setupLogging(cfg)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a YAML or JSON config file")
	pf.BoolP("verbose", "v", false, "verbose (debug) logging")
	pf.Bool("log-json", false, "emit logs and errors as JSON on stderr")
	pf.String("user-agent", "", "User-Agent header sent with the request")
	pf.Duration("timeout", 0, "request timeout (default 15s)")
	pf.Int("max-redirects", 0, "maximum redirects to follow (default 10)")
	pf.String("format", "", "output format: text, markdown, json or pdf (default text)")
	pf.StringP("output", "o", "", "write output to this file instead of stdout")
}

// resolveConfig layers defaults, config file, environment and changed flags.
func resolveConfig(cmd *cobra.Command) (app.Config, error) {
	c := app.DefaultConfig()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return c, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&c, fc)
	}
	app.ApplyEnvOverrides(&c)

	if flags.Changed("verbose") {
		c.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("log-json") {
		c.LogJSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("user-agent") {
		c.UserAgent, _ = flags.GetString("user-agent")
	}
	if flags.Changed("timeout") {
		c.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("max-redirects") {
		c.RedirectMaxHops, _ = flags.GetInt("max-redirects")
	}
	if flags.Changed("format") {
		c.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		c.OutputPath, _ = flags.GetString("output")
	}
	return c, app.ValidateConfig(c)
}

func setupLogging(c app.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if c.LogJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if c.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// reportError prints a user-facing failure. Scrape messages are written for
// end users, so they are printed verbatim rather than as a log line.
func reportError(err error) {
	if cfg.LogJSON {
		_ = render.WriteError(os.Stderr, err)
		return
	}
	var se *scrape.Error
	if errors.As(err, &se) {
		log.Debug().Err(se.Err).Str("kind", se.Kind.String()).Str("url", se.URL).Msg("scrape failed")
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(app.ExitCode(err))
	}
}

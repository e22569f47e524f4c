package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/wikitext/internal/fetch"
	"github.com/hyperifyio/wikitext/internal/render"
	"github.com/hyperifyio/wikitext/internal/scrape"
)

// Exit codes used by the CLI.
const (
	ExitOK = 0
	// ExitFailure covers usage, validation, transport and HTTP errors.
	ExitFailure = 1
	// ExitNoArticle means the article is missing or has no usable prose.
	ExitNoArticle = 2
)

// App wires configuration to the scraper and output renderer for one CLI run.
type App struct {
	cfg     Config
	format  render.Format
	scraper *scrape.Scraper
	// Stdout receives output when no output path is configured.
	Stdout io.Writer
}

// New validates cfg and builds an App.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	client := &fetch.Client{
		HTTPClient:      newHTTPClient(),
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.Timeout,
		RedirectMaxHops: cfg.RedirectMaxHops,
		MaxBodyBytes:    cfg.MaxBodyBytes,
	}
	return &App{cfg: cfg, format: format, scraper: scrape.New(client), Stdout: os.Stdout}, nil
}

// Fetch scrapes rawURL and writes the article in the configured format.
func (a *App) Fetch(ctx context.Context, rawURL string) error {
	article, err := a.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, a.format, article); err != nil {
		return fmt.Errorf("render %s: %w", a.format, err)
	}

	if p := strings.TrimSpace(a.cfg.OutputPath); p != "" && p != "-" {
		if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("out", p).Str("format", string(a.format)).Msg("wrote article")
		return nil
	}
	if _, err := a.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// ExitCode maps an error from Fetch to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var se *scrape.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case scrape.KindNotFound, scrape.KindNoContent, scrape.KindTooShort:
			return ExitNoArticle
		}
	}
	return ExitFailure
}

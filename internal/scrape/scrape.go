// Package scrape runs the single-article pipeline: validate the URL,
// normalize it, fetch the page and extract its prose.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/wikitext/internal/extract"
	"github.com/hyperifyio/wikitext/internal/fetch"
	"github.com/hyperifyio/wikitext/internal/htmldoc"
	"github.com/hyperifyio/wikitext/internal/wikiurl"
)

// Article is the result of one successful Scrape.
type Article struct {
	Title string
	Body  string
	// URL is the effective URL after any server-side redirect.
	URL string
	// RequestedURL is the normalized URL that was fetched.
	RequestedURL string
	Slug         string
	Paragraphs   []string
}

// Scraper holds the HTTP client used for fetching. It keeps no per-call
// state and is safe for concurrent use.
type Scraper struct {
	Client *fetch.Client
}

// New returns a Scraper using client, or a default fetch client when nil.
func New(client *fetch.Client) *Scraper {
	if client == nil {
		client = &fetch.Client{}
	}
	return &Scraper{Client: client}
}

var defaultScraper = New(nil)

// Scrape runs the pipeline with default fetch settings.
func Scrape(ctx context.Context, rawURL string) (*Article, error) {
	return defaultScraper.Scrape(ctx, rawURL)
}

// Scrape fetches the article at rawURL and returns its title and prose.
// Every failure is an *Error; nothing is retried and no partial article is
// returned.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Article, error) {
	if err := wikiurl.Validate(rawURL); err != nil {
		return nil, validationError(rawURL, err)
	}
	u := wikiurl.Normalize(rawURL)
	slug := wikiurl.Slug(u)
	logger := log.With().Str("url", u).Str("slug", slug).Logger()

	client := s.Client
	if client == nil {
		client = &fetch.Client{}
	}
	resp, err := client.Get(ctx, u)
	if err != nil {
		logger.Debug().Err(err).Msg("fetch failed")
		return nil, connectionError(u, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFoundError(u, slug)
	case resp.StatusCode != http.StatusOK:
		return nil, httpError(u, resp.StatusCode, resp.Reason)
	}
	if resp.URL != u {
		// Wikipedia redirects aliases to the canonical article; the target is trusted.
		logger.Debug().Str("final_url", resp.URL).Msg("followed redirect")
	}

	root, err := htmldoc.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, noContentError(u, err)
	}
	res, err := extract.Article(root)
	switch {
	case errors.Is(err, extract.ErrNoContent):
		return nil, noContentError(u, err)
	case errors.Is(err, extract.ErrTooShort):
		return nil, tooShortError(u, err)
	case err != nil:
		return nil, noContentError(u, err)
	}

	logger.Info().
		Str("title", res.Title).
		Int("paragraphs", len(res.Paragraphs)).
		Int("chars", len(res.Body)).
		Msg("article extracted")
	return &Article{
		Title:        res.Title,
		Body:         res.Body,
		URL:          resp.URL,
		RequestedURL: u,
		Slug:         slug,
		Paragraphs:   res.Paragraphs,
	}, nil
}

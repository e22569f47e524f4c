// Package render writes an extracted article in one of the supported output
// formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hyperifyio/wikitext/internal/scrape"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatMarkdown, FormatJSON, FormatPDF}

// ParseFormat accepts a format name case-insensitively; "md" and "txt" are
// aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
}

// Write renders a to w in format f. Text, markdown and PDF output is NFC
// normalized for display; JSON carries the extracted strings unchanged.
func Write(w io.Writer, f Format, a *scrape.Article) error {
	switch f {
	case FormatText, "":
		return writeText(w, a)
	case FormatMarkdown:
		return writeMarkdown(w, a)
	case FormatJSON:
		return writeJSON(w, a)
	case FormatPDF:
		return writePDF(w, a)
	}
	return fmt.Errorf("unknown format %q", f)
}

func writeText(w io.Writer, a *scrape.Article) error {
	var b strings.Builder
	if a.Title != "" {
		b.WriteString(a.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(a.Body)
	b.WriteString("\n")
	_, err := io.WriteString(w, display(b.String()))
	return err
}

func writeMarkdown(w io.Writer, a *scrape.Article) error {
	var b strings.Builder
	if a.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", a.Title)
	}
	b.WriteString(a.Body)
	b.WriteString("\n")
	if a.URL != "" {
		fmt.Fprintf(&b, "\nSource: [%s](%s)\n", sourceLabel(a), a.URL)
	}
	_, err := io.WriteString(w, display(b.String()))
	return err
}

// display composes decomposed sequences so "e" + U+0301 prints as "é".
func display(s string) string {
	return norm.NFC.String(s)
}

func sourceLabel(a *scrape.Article) string {
	if a.Title != "" {
		return a.Title
	}
	return a.URL
}

type jsonArticle struct {
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	URL          string   `json:"url"`
	RequestedURL string   `json:"requested_url"`
	Slug         string   `json:"slug"`
	Paragraphs   []string `json:"paragraphs"`
}

func writeJSON(w io.Writer, a *scrape.Article) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonArticle{
		Title:        a.Title,
		Body:         a.Body,
		URL:          a.URL,
		RequestedURL: a.RequestedURL,
		Slug:         a.Slug,
		Paragraphs:   a.Paragraphs,
	})
}

// WriteError renders a failure as JSON for machine consumers.
func WriteError(w io.Writer, err error) error {
	payload := struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}{Kind: scrape.KindOf(err).String(), Message: err.Error()}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

// Package wikiurl validates and canonicalizes Wikipedia article URLs.
package wikiurl

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// Domain is the host substring every accepted URL must carry.
	Domain = "wikipedia.org"
	// ArticlePrefix is the path prefix of article pages.
	ArticlePrefix = "/wiki/"

	articleMarker = "wiki"
	exampleURL    = "https://en.wikipedia.org/wiki/Article_Name"
)

var (
	ErrEmpty         = errors.New("empty url")
	ErrMalformed     = errors.New("malformed url")
	ErrInvalidDomain = errors.New("invalid domain")
	ErrInvalidPath   = errors.New("invalid path")
)

// ValidationError explains why a URL was rejected. Error returns a message
// meant to be shown to end users as-is.
type ValidationError struct {
	// Reason is one of ErrEmpty, ErrMalformed, ErrInvalidDomain, ErrInvalidPath.
	Reason error
	URL    string
	// Err is the underlying parse error for ErrMalformed.
	Err error
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ErrEmpty:
		return "Please enter a Wikipedia URL"
	case ErrMalformed:
		if e.Err != nil {
			return fmt.Sprintf("Invalid URL format: %v", e.Err)
		}
		return "Invalid URL format"
	case ErrInvalidDomain:
		return "Please provide a valid Wikipedia URL (e.g., " + exampleURL + ")"
	case ErrInvalidPath:
		return "Invalid Wikipedia URL format. It should be: " + exampleURL
	}
	return "invalid url"
}

func (e *ValidationError) Unwrap() []error {
	errs := []error{e.Reason}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Validate reports whether raw looks like a Wikipedia article URL. It returns
// nil or a *ValidationError. Checks run in order: empty, parse, host, path.
func Validate(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return &ValidationError{Reason: ErrEmpty, URL: raw}
	}
	u, err := url.Parse(s)
	if err != nil {
		return &ValidationError{Reason: ErrMalformed, URL: raw, Err: err}
	}
	if !strings.Contains(strings.ToLower(u.Host), Domain) {
		return &ValidationError{Reason: ErrInvalidDomain, URL: raw}
	}
	if !strings.HasPrefix(u.Path, ArticlePrefix) {
		return &ValidationError{Reason: ErrInvalidPath, URL: raw}
	}
	return nil
}

var underscoreRuns = regexp.MustCompile(`_+`)

// Normalize rewrites the article name of a /wiki/ URL the way Wikipedia
// spells it: spaces become underscores, underscore runs collapse and edge
// underscores are trimmed. Scheme, host, query and fragment are kept. URLs of
// any other shape are returned unchanged. Normalize is idempotent.
func Normalize(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	// Work on the escaped form so characters like parentheses keep their
	// original spelling. Literal spaces show up here as %20.
	segments := strings.Split(u.EscapedPath(), "/")
	if len(segments) < 3 || segments[1] != articleMarker {
		return raw
	}
	name := strings.Join(segments[2:], "/")
	name = strings.ReplaceAll(name, "%20", "_")
	name = strings.ReplaceAll(name, " ", "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	escaped := ArticlePrefix + name
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return raw
	}
	u.Path = decoded
	u.RawPath = escaped
	return u.String()
}

// Slug returns the article name that follows /wiki/ in raw, or "unknown".
func Slug(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "unknown"
	}
	i := strings.LastIndex(u.Path, ArticlePrefix)
	if i < 0 {
		return "unknown"
	}
	return u.Path[i+len(ArticlePrefix):]
}

package scrape

import (
	"errors"
	"fmt"

	"github.com/hyperifyio/wikitext/internal/wikiurl"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConnection
	KindNotFound
	KindHTTP
	KindNoContent
	KindTooShort
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindNotFound:
		return "not_found"
	case KindHTTP:
		return "http"
	case KindNoContent:
		return "no_content"
	case KindTooShort:
		return "too_short"
	}
	return "unknown"
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConnection = &Error{Kind: KindConnection}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrHTTP       = &Error{Kind: KindHTTP}
	ErrNoContent  = &Error{Kind: KindNoContent}
	ErrTooShort   = &Error{Kind: KindTooShort}
)

// Error is the single failure type returned by Scrape. Message is written
// for end users and is what Error returns.
type Error struct {
	Kind    Kind
	Message string
	// URL is the normalized URL once normalization ran, else the input.
	URL string
	// Slug is set for KindNotFound.
	Slug string
	// StatusCode is set for KindNotFound and KindHTTP.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain. A bare
// *wikiurl.ValidationError counts as KindValidation.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var ve *wikiurl.ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	return KindUnknown
}

func validationError(raw string, err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), URL: raw, Err: err}
}

func connectionError(u string, err error) *Error {
	return &Error{
		Kind:    KindConnection,
		Message: fmt.Sprintf("Failed to connect to Wikipedia: %v", err),
		URL:     u,
		Err:     err,
	}
}

func notFoundError(u, slug string) *Error {
	return &Error{
		Kind: KindNotFound,
		Message: fmt.Sprintf("Wikipedia article not found: '%s'. "+
			"Please check the URL spelling. Common issues:\n"+
			"• Typos in the article name (e.g., 'kohili' should be 'Kohli')\n"+
			"• Missing capital letters (Wikipedia is case-sensitive)\n"+
			"• Article doesn't exist\n\n"+
			"Try searching for the correct article name on Wikipedia first.", slug),
		URL:        u,
		Slug:       slug,
		StatusCode: 404,
	}
}

func httpError(u string, code int, reason string) *Error {
	return &Error{
		Kind:       KindHTTP,
		Message:    fmt.Sprintf("Wikipedia returned error %d: %s", code, reason),
		URL:        u,
		StatusCode: code,
	}
}

func noContentError(u string, err error) *Error {
	return &Error{
		Kind:    KindNoContent,
		Message: "Could not extract content from the Wikipedia article. The page might be empty or have a different structure.",
		URL:     u,
		Err:     err,
	}
}

func tooShortError(u string, err error) *Error {
	return &Error{
		Kind:    KindTooShort,
		Message: "The Wikipedia article is too short to generate a quiz. Please try a more detailed article.",
		URL:     u,
		Err:     err,
	}
}

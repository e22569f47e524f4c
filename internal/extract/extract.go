// Package extract turns a parsed Wikipedia article page into plain prose.
package extract

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/wikitext/internal/htmldoc"
)

const (
	// MinParagraphChars is the length a paragraph must exceed to be kept.
	MinParagraphChars = 20
	// MinBodyChars is the minimum length of the joined body.
	MinBodyChars = 100

	paragraphSeparator = "\n\n"
	titleID            = "firstHeading"
)

var (
	// ErrNoContent means no paragraph survived filtering.
	ErrNoContent = errors.New("no article paragraphs found")
	// ErrTooShort means the joined body is under MinBodyChars.
	ErrTooShort = errors.New("article body too short")
)

// contentIDs are tried in order to locate the article prose container.
var contentIDs = []string{"mw-content-text", "content"}

// nonProse elements are stripped from the container before paragraphs are
// read: infobox/navbox tables, reference markers, side panels, style and
// script blocks.
var nonProse = []string{"table", "sup", "aside", "style", "script"}

// Result is the extracted article text.
type Result struct {
	Title string
	// Body is Paragraphs joined by a blank line.
	Body       string
	Paragraphs []string
}

// FromHTML parses input and extracts the article from it.
func FromHTML(input []byte) (Result, error) {
	root, err := htmldoc.Parse(bytes.NewReader(input))
	if err != nil {
		return Result{}, err
	}
	return Article(root)
}

// Article extracts the title and body prose under root. The content
// container is pruned in place.
func Article(root htmldoc.Node) (Result, error) {
	var res Result
	if h := root.Find("h1", titleID); h != nil {
		res.Title = strings.TrimSpace(h.Text())
	}

	content := findContent(root)
	for _, n := range content.FindAll(nonProse...) {
		n.Remove()
	}

	for _, p := range content.FindAll("p") {
		txt := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(txt) <= MinParagraphChars {
			continue
		}
		res.Paragraphs = append(res.Paragraphs, txt)
	}
	if len(res.Paragraphs) == 0 {
		return res, ErrNoContent
	}

	res.Body = strings.Join(res.Paragraphs, paragraphSeparator)
	if utf8.RuneCountInString(res.Body) < MinBodyChars {
		return res, ErrTooShort
	}
	return res, nil
}

func findContent(root htmldoc.Node) htmldoc.Node {
	for _, id := range contentIDs {
		if n := root.FindByID(id); n != nil {
			return n
		}
	}
	return root
}

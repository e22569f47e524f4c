// Package htmldoc exposes the small set of DOM capabilities the article
// extractor needs, backed by goquery over an x/net/html parse tree.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is an element subtree that can be searched, pruned and read as text.
// Lookups return nil when nothing matches.
type Node interface {
	// FindByID returns the first descendant whose id attribute equals id.
	FindByID(id string) Node
	// Find returns the first descendant element named tag. When id is
	// non-empty the element must also carry that id.
	Find(tag, id string) Node
	// FindAll returns every descendant element named by any of tags, in
	// document order.
	FindAll(tags ...string) []Node
	// Remove detaches the subtree from its parent.
	Remove()
	// Text returns the concatenated text content, trimmed.
	Text() string
}

// Parse reads an HTML document into a Node rooted at the document.
func Parse(r io.Reader) (Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &selection{s: goquery.NewDocumentFromNode(root).Selection}, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(b []byte) (Node, error) {
	return Parse(bytes.NewReader(b))
}

type selection struct {
	s *goquery.Selection
}

func wrap(s *goquery.Selection) Node {
	if s.Length() == 0 {
		return nil
	}
	return &selection{s: s.First()}
}

func hasID(id string) func(int, *goquery.Selection) bool {
	return func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr("id")
		return ok && v == id
	}
}

func (n *selection) FindByID(id string) Node {
	return wrap(n.s.Find("[id]").FilterFunction(hasID(id)))
}

func (n *selection) Find(tag, id string) Node {
	found := n.s.Find(strings.ToLower(tag))
	if id != "" {
		found = found.FilterFunction(hasID(id))
	}
	return wrap(found)
}

func (n *selection) FindAll(tags ...string) []Node {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, strings.ToLower(t))
	}
	found := n.s.Find(strings.Join(names, ", "))
	out := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &selection{s: s})
	})
	return out
}

func (n *selection) Remove() {
	n.s.Remove()
}

func (n *selection) Text() string {
	return strings.TrimSpace(n.s.Text())
}

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/wikitext/internal/scrape"
)

func sampleArticle() *scrape.Article {
	return &scrape.Article{
		Title:        "Alan Turing",
		Body:         "First paragraph about Turing.\n\nSecond paragraph about Bletchley Park.",
		URL:          "https://en.wikipedia.org/wiki/Alan_Turing",
		RequestedURL: "https://en.wikipedia.org/wiki/Turing",
		Slug:         "Turing",
		Paragraphs:   []string{"First paragraph about Turing.", "Second paragraph about Bletchley Park."},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":         FormatText,
		"TXT":      FormatText,
		"md":       FormatMarkdown,
		"Markdown": FormatMarkdown,
		"json":     FormatJSON,
		" pdf ":    FormatPDF,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleArticle()))
	assert.Equal(t, "Alan Turing\n\nFirst paragraph about Turing.\n\nSecond paragraph about Bletchley Park.\n", buf.String())
}

func TestWrite_TextWithoutTitle(t *testing.T) {
	a := sampleArticle()
	a.Title = ""
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, a))
	assert.True(t, strings.HasPrefix(buf.String(), "First paragraph"))
}

func TestWrite_TextComposesForDisplay(t *testing.T) {
	a := sampleArticle()
	a.Title = "Cafe\u0301"
	a.Body = "Cafe\u0301 culture in Vienna."
	a.Paragraphs = []string{a.Body}

	var text bytes.Buffer
	require.NoError(t, Write(&text, FormatText, a))
	assert.Equal(t, "Caf\u00e9\n\nCaf\u00e9 culture in Vienna.\n", text.String())

	var raw bytes.Buffer
	require.NoError(t, Write(&raw, FormatJSON, a))
	var got jsonArticle
	require.NoError(t, json.Unmarshal(raw.Bytes(), &got))
	assert.Equal(t, "Cafe\u0301", got.Title)
}

func TestWrite_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMarkdown, sampleArticle()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Alan Turing\n\n"))
	assert.Contains(t, out, "Source: [Alan Turing](https://en.wikipedia.org/wiki/Alan_Turing)")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleArticle()))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Alan Turing", got["title"])
	assert.Equal(t, "https://en.wikipedia.org/wiki/Turing", got["requested_url"])
	assert.Len(t, got["paragraphs"], 2)
}

func TestWrite_PDF(t *testing.T) {
	a := sampleArticle()
	a.Title = "Café Turing"
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, a))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("docx"), sampleArticle()))
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	err := &scrape.Error{Kind: scrape.KindTooShort, Message: "too short"}
	require.NoError(t, WriteError(&buf, err))
	assert.JSONEq(t, `{"kind":"too_short","message":"too short"}`, buf.String())

	buf.Reset()
	require.NoError(t, WriteError(&buf, errors.New("boom")))
	assert.JSONEq(t, `{"kind":"unknown","message":"boom"}`, buf.String())
}

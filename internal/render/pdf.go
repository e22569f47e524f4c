package render

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/wikitext/internal/scrape"
)

// writePDF lays out the title and one MultiCell per paragraph on A4 pages.
// Core fonts are cp1252, so text goes through gofpdf's UTF-8 translator and
// characters outside that code page degrade.
func writePDF(w io.Writer, a *scrape.Article) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(a.Title, true)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	if a.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(display(a.Title)), "", "L", false)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
	}

	paragraphs := a.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = strings.Split(a.Body, "\n\n")
	}
	for _, p := range paragraphs {
		pdf.MultiCell(0, 5, tr(display(p)), "", "L", false)
		pdf.Ln(3)
	}

	if a.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.WriteLinkString(5, tr(a.URL), a.URL)
	}
	return pdf.Output(w)
}

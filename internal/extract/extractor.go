// Package extract wraps PDF text extraction and the per-query text search.
package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Page is the extracted text of a single page.
type Page struct {
	PageNum   int    `json:"page_num"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// Extractor produces text from a document on disk. Implementations treat the
// document as opaque; a malformed file surfaces as an error and nothing
// downstream (store, projector) is invoked.
type Extractor interface {
	// FullText returns the whole document as one string, pages joined with
	// "--- Page N ---" marker lines.
	FullText(path string) (string, error)
	// ByPage returns per-page text with word counts. Pages with no
	// extractable text are skipped.
	ByPage(path string) ([]Page, error)
}

// PageMarker formats the marker line inserted before each page's text.
func PageMarker(n int) string {
	return fmt.Sprintf("--- Page %d ---", n)
}

// Fitz is the MuPDF-backed Extractor.
type Fitz struct{}

// NewFitz returns the go-fitz based extractor.
func NewFitz() *Fitz {
	return &Fitz{}
}

// FullText implements Extractor.
func (f *Fitz) FullText(path string) (string, error) {
	pages, err := f.ByPage(path)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range pages {
		b.WriteString("\n")
		b.WriteString(PageMarker(p.PageNum))
		b.WriteString("\n")
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ByPage implements Extractor.
func (f *Fitz) ByPage(path string) ([]Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer doc.Close()

	var pages []Page
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("extract: page %d of %s: %w", i+1, path, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{
			PageNum:   i + 1,
			Text:      text,
			WordCount: len(strings.Fields(text)),
		})
	}
	return pages, nil
}

// Package extractor pulls per-page plain text out of PDF files using MuPDF.
package extractor

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
)

// Page is one page of extracted text. Numbers are 1-based.
type Page struct {
	Number int
	Text   string
}

type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract opens the PDF at path and returns its pages in order. A file that
// cannot be opened or read is a collaborator failure of the extraction layer.
func (e *PDFExtractor) Extract(path string) ([]Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, &errs.CollaboratorError{
			Collaborator: "pdf extractor",
			Unreachable:  true,
			Err:          fmt.Errorf("open %s: %w", path, err),
		}
	}
	defer doc.Close()

	pages := make([]Page, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, &errs.CollaboratorError{
				Collaborator: "pdf extractor",
				Err:          fmt.Errorf("extract page %d: %w", i+1, err),
			}
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}

	return pages, nil
}

// FullText concatenates pages with visible separators. Used for the plain-text
// artifact kept alongside the raw PDF for reprocessing and debugging.
func FullText(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "\n--- Page %d ---\n", p.Number)
		b.WriteString(p.Text)
	}
	return b.String()
}

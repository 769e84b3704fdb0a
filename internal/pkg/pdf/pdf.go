// Package pdf renders offer letter documents to PDF bytes.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Document is a fully resolved letter: all variable placeholders have
// already been substituted into the paragraph text.
type Document struct {
	Title       string
	HeaderLines []string
	Paragraphs  []string
	FooterLines []string
}

// Render produces an A4 portrait PDF for the document.
func Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	if len(doc.HeaderLines) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(90, 90, 90)
		for _, line := range doc.HeaderLines {
			pdf.CellFormat(0, 5, line, "", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	for _, para := range doc.Paragraphs {
		pdf.MultiCell(0, 6, para, "", "L", false)
		pdf.Ln(3)
	}

	if len(doc.FooterLines) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(90, 90, 90)
		for _, line := range doc.FooterLines {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

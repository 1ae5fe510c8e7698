// PDF renderer.
// Converts Markdown into a styled PDF using gofpdf.
// Handles headings (Setext and ATX), paragraphs, code blocks, rules and lists.
// Images are not rendered.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/clipmark/core"
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.Metadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.SetCreator("clipmark", true)
	pdf.AddPage()

	// The core fonts are cp1252; this maps smart quotes and dashes.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for _, b := range scanBlocks(markdown) {
		switch b.kind {
		case blockBlank:
			pdf.Ln(3)

		case blockHeading:
			renderHeading(pdf, tr(plainInline(b.text)), b.level)

		case blockCode:
			pdf.Ln(2)
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(b.text), "", "L", true)
			pdf.Ln(2)

		case blockRule:
			pdf.Ln(2)
			y := pdf.GetY()
			left, _, right, _ := pdf.GetMargins()
			width, _ := pdf.GetPageSize()
			pdf.SetDrawColor(180, 180, 180)
			pdf.Line(left, y, width-right, y)
			pdf.Ln(2)

		case blockListItem:
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(pdf.GetX() + float64(b.depth)*6)
			pdf.MultiCell(0, 5, tr(b.marker+" "+plainInline(b.text)), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			if b.depth > 0 {
				pdf.SetX(pdf.GetX() + float64(b.depth)*6)
			}
			pdf.MultiCell(0, 5, tr(plainInline(b.text)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// ContentType returns the MIME type for PDF output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, strings.TrimSpace(text), "", "L", false)
	pdf.Ln(2)
}

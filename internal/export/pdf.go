package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

const (
	pdfMargin    = 10.0
	pdfPageWidth = 277.0 // A4 landscape minus margins
	pdfRowHeight = 7.0
)

// PDF renders rows as a landscape statement table. Column widths are
// split evenly across the page.
func PDF(title string, rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	keys := rows[0].Keys()
	colWidth := pdfPageWidth / float64(len(keys))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d rows", time.Now().Format("2006-01-02 15:04"), len(rows)))
	pdf.Ln(9)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(220, 230, 240)
		for _, k := range keys {
			pdf.CellFormat(colWidth, pdfRowHeight, k, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}

	header()
	_, pageHeight := pdf.GetPageSize()
	for _, row := range rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			header()
		}
		for _, k := range keys {
			pdf.CellFormat(colWidth, pdfRowHeight, row.Get(k), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // margin in mm
	pdfLineHeight = 5   // line height in mm
	pdfFontSize   = 9
)

// writePDFReport renders the search report as an A4 PDF: a bold header, the
// match lines in a monospaced font, and the summary. The layout mirrors the
// text report so the two destinations stay interchangeable.
func writePDFReport(outputPath string, cfg *SearchConfig, sum *SearchSummary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	cellWidth := float64(pdfPageWidth - 2*pdfMargin)

	pdf.SetFont("Helvetica", "B", pdfFontSize+2)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(cellWidth, pdfLineHeight, fmt.Sprintf("Searching for %q in %s and all subfolders...", cfg.Query, cfg.Root), "", "L", false)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	if cfg.CaseSensitive {
		pdf.MultiCell(cellWidth, pdfLineHeight, "Case-sensitive search enabled", "", "L", false)
	}
	pdf.MultiCell(cellWidth, pdfLineHeight, fmt.Sprintf("Extensions: .%s", strings.Join(cfg.Extensions, ", .")), "", "L", false)
	pdf.Ln(pdfLineHeight)

	if sum.TotalMatches == 0 {
		pdf.MultiCell(cellWidth, pdfLineHeight, "No matches found.", "", "L", false)
	} else {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.MultiCell(cellWidth, pdfLineHeight, fmt.Sprintf("Found %d matches in %d files:", sum.TotalMatches, sum.FilesWithMatches), "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		if cfg.ShowLines && len(sum.Records) > 0 {
			pdf.SetFont("Courier", "", pdfFontSize)
			for _, record := range sum.Records {
				pdf.MultiCell(cellWidth, pdfLineHeight, fmt.Sprintf("%s (Line %d): %s", record.Path, record.Line, record.Text), "", "L", false)
			}
			pdf.Ln(pdfLineHeight / 2)
		}
	}

	pdf.Ln(pdfLineHeight / 2)
	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.MultiCell(cellWidth, pdfLineHeight, fmt.Sprintf("Summary: %d files searched, %d matches found", sum.FilesSearched, sum.TotalMatches), "", "L", false)

	if len(sum.Errors) > 0 {
		pdf.Ln(pdfLineHeight)
		pdf.SetTextColor(180, 0, 0)
		pdf.MultiCell(cellWidth, pdfLineHeight, "Errors encountered:", "", "L", false)
		pdf.SetFont("Courier", "", pdfFontSize-1)
		for _, e := range sum.Errors {
			pdf.MultiCell(cellWidth, pdfLineHeight, fmt.Sprintf("  %s: %s", e.Path, e.Reason), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

package summary

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"casevault/internal/model"
)

// WritePDF writes the UTC report as an A4 PDF.
func WritePDF(w io.Writer, c model.Case, detailed bool) error {
	return Projector{}.WritePDF(w, c, detailed)
}

// WritePDF renders the same report as Summarize (or SummarizeDetailed) to an
// A4 PDF for handing to an attorney.
func (p Projector) WritePDF(w io.Writer, c model.Case, detailed bool) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(c.Name, true)
	pdf.SetCreator("casevault", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, line := range p.Lines(c, detailed) {
		switch {
		case line == "":
			pdf.Ln(4)
			continue
		case i == 0:
			pdf.SetFont("Helvetica", "B", 16)
		case isHeading(line):
			pdf.SetFont("Helvetica", "B", 12)
		default:
			pdf.SetFont("Helvetica", "", 11)
		}
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}

	return pdf.Output(w)
}

func isHeading(line string) bool {
	for _, h := range []string{HeadingTimeline, HeadingDocuments, HeadingWitnesses, HeadingExpenses, HeadingDeadlines} {
		if strings.HasPrefix(line, h) {
			return true
		}
	}
	return false
}

package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin   = 36.0
	pdfLine     = 14.0
	pdfFontSize = 10.0
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"name", 220},
	{"words", 50},
	{"chars", 50},
	{"w.edits", 55},
	{"c.edits", 55},
	{"wer", 55},
	{"cer", 55},
}

// WritePDF renders r as a table on Letter pages with the run summary on top
func WritePDF(path string, r *Report, title string) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetFont("Courier", "B", pdfFontSize)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfLine, c.title, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfLine)
		pdf.SetFont("Courier", "", pdfFontSize)
	})

	pdf.AddPage()
	pdf.SetFont("Courier", "B", 14)
	pdf.CellFormat(0, 20, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", pdfFontSize)
	s := r.Summary
	for _, line := range []string{
		fmt.Sprintf("run:    %s", r.ID),
		fmt.Sprintf("date:   %s", r.Date),
		fmt.Sprintf("scored: %d  failed: %d", s.Scored, s.Failed),
		fmt.Sprintf("mean   wer: %.5f  cer: %.5f", s.MeanWER, s.MeanCER),
		fmt.Sprintf("corpus wer: %.5f  cer: %.5f", s.CorpusWER, s.CorpusCER),
	} {
		pdf.CellFormat(0, pdfLine, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(pdfLine)

	// Later pages get the column titles from the header func
	pdf.SetFont("Courier", "B", pdfFontSize)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, pdfLine, c.title, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(pdfLine)
	pdf.SetFont("Courier", "", pdfFontSize)

	for _, row := range r.Rows {
		cells := []string{
			fitText(pdf, row.Name, pdfColumns[0].width),
			fmt.Sprint(row.RefWords),
			fmt.Sprint(row.RefChars),
			fmt.Sprint(row.WordEdits),
			fmt.Sprint(row.CharEdits),
			fmt.Sprintf("%.4f", row.WER),
			fmt.Sprintf("%.4f", row.CER),
		}
		if row.Err != "" {
			cells[5], cells[6] = "-", "-"
		}
		for i, c := range pdfColumns {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(c.width, pdfLine, cells[i], "", 0, align, false, 0, "")
		}
		pdf.Ln(pdfLine)
	}
	return pdf.OutputFileAndClose(path)
}

// Trims s from the right until it fits width at the current font size
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	rs := []rune(s)
	for len(rs) > 1 && pdf.GetStringWidth(string(rs)) > width-4 {
		rs = rs[:len(rs)-1]
	}
	return string(rs)
}

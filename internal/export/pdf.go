package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont      = "Helvetica"
	pdfRowHeight = 5.5
	pdfFontSize  = 7
)

type rgb struct{ r, g, b int }

var (
	colorHeader = rgb{0x1a, 0x1a, 0x1a}
	colorStripe = rgb{0xf5, 0xf5, 0xf5}
	colorAlert  = rgb{0xff, 0xd9, 0xd9}
	colorMuted  = rgb{0xff, 0xf3, 0xcd}
	colorTotal  = rgb{0xf5, 0x9e, 0x0b}
)

// PDF renders doc as an A4 table report using the core Helvetica font.
func PDF(doc *Document) ([]byte, error) {
	orientation := "P"
	if doc.Landscape {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont(pdfFont, "", 9)
		pdf.SetTextColor(0x55, 0x55, 0x55)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(3)

	for _, s := range doc.Sections {
		writePDFSection(pdf, tr, s)
		pdf.Ln(4)
	}

	if doc.NotesTitle != "" || len(doc.Notes) > 0 {
		ensureSpace(pdf, 8+float64(len(doc.Notes))*5)
		if doc.NotesTitle != "" {
			pdf.SetFont(pdfFont, "B", 11)
			pdf.CellFormat(0, 7, tr(doc.NotesTitle), "", 1, "L", false, 0, "")
		}
		pdf.SetFont(pdfFont, "", 9)
		for _, n := range doc.Notes {
			pdf.MultiCell(0, 5, tr(n), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFSection(pdf *fpdf.Fpdf, tr func(string) string, s Section) {
	widths := columnWidths(pdf, s)

	if s.Title != "" {
		ensureSpace(pdf, 7+2*pdfRowHeight)
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(0, 7, tr(s.Title), "", 1, "L", false, 0, "")
	}

	header := func() {
		pdf.SetFont(pdfFont, "B", pdfFontSize)
		pdf.SetFillColor(colorHeader.r, colorHeader.g, colorHeader.b)
		pdf.SetTextColor(0xff, 0xff, 0xff)
		for i, h := range s.Headers {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	pdf.SetDrawColor(0xcc, 0xcc, 0xcc)
	for r, row := range s.Rows {
		if !fits(pdf, pdfRowHeight) {
			pdf.AddPage()
			header()
		}
		for i, c := range row {
			if i >= len(widths) {
				break
			}
			style := ""
			fill := rgb{0xff, 0xff, 0xff}
			if r%2 == 1 {
				fill = colorStripe
			}
			switch c.Tone {
			case ToneAlert:
				fill, style = colorAlert, "B"
			case ToneMuted:
				fill = colorMuted
			case ToneTotal:
				fill, style = colorTotal, "B"
			}
			align := "C"
			if i == 1 {
				align = "L"
			}
			pdf.SetFont(pdfFont, style, pdfFontSize)
			pdf.SetFillColor(fill.r, fill.g, fill.b)
			pdf.CellFormat(widths[i], pdfRowHeight, tr(c.Text), "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func columnWidths(pdf *fpdf.Fpdf, s Section) []float64 {
	if len(s.Widths) == len(s.Headers) {
		return s.Widths
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	n := len(s.Headers)
	if n == 0 {
		return nil
	}
	w := (pageW - left - right) / float64(n)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = w
	}
	return widths
}

func fits(pdf *fpdf.Fpdf, h float64) bool {
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	return pdf.GetY()+h <= pageH-bottom
}

func ensureSpace(pdf *fpdf.Fpdf, h float64) {
	if !fits(pdf, h) {
		pdf.AddPage()
	}
}

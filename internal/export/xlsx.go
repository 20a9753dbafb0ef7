package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX renders doc onto a single sheet.
func XLSX(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.Sheet
	if sheet == "" {
		sheet = "Laporan"
	}
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	maxCols := 1
	for _, s := range doc.Sections {
		if len(s.Headers) > maxCols {
			maxCols = len(s.Headers)
		}
	}

	row := 1
	f.SetCellValue(sheet, cell("A", row), doc.Title)
	f.MergeCell(sheet, cell("A", row), cell(colName(maxCols-1), row))
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), styles.title)
	row++
	if doc.Subtitle != "" {
		f.SetCellValue(sheet, cell("A", row), doc.Subtitle)
		row++
	}

	for _, s := range doc.Sections {
		row++
		if s.Title != "" {
			f.SetCellValue(sheet, cell("A", row), s.Title)
			f.SetCellStyle(sheet, cell("A", row), cell("A", row), styles.section)
			row++
		}

		for i, h := range s.Headers {
			f.SetCellValue(sheet, cell(colName(i), row), h)
		}
		if len(s.Headers) > 0 {
			f.SetCellStyle(sheet, cell("A", row), cell(colName(len(s.Headers)-1), row), styles.header)
		}
		row++

		for _, r := range s.Rows {
			for i, c := range r {
				ref := cell(colName(i), row)
				f.SetCellValue(sheet, ref, c.Text)
				if st := styles.forTone(c.Tone); st != 0 {
					f.SetCellStyle(sheet, ref, ref, st)
				}
			}
			row++
		}
	}

	if doc.NotesTitle != "" || len(doc.Notes) > 0 {
		row++
		if doc.NotesTitle != "" {
			f.SetCellValue(sheet, cell("A", row), doc.NotesTitle)
			f.SetCellStyle(sheet, cell("A", row), cell("A", row), styles.section)
			row++
		}
		for _, n := range doc.Notes {
			f.SetCellValue(sheet, cell("A", row), n)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "B", 28)
	if maxCols > 2 {
		f.SetColWidth(sheet, "C", colName(maxCols-1), 12)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type xlsxStyles struct {
	title, section, header int
	alert, muted, total    int
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	var s xlsxStyles
	var err error
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&s.section, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A1A1A"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.alert, &excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#CC0000"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFD9D9"}, Pattern: 1},
		}},
		{&s.muted, &excelize.Style{
			Font: &excelize.Font{Color: "#666666"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF3CD"}, Pattern: 1},
		}},
		{&s.total, &excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#F59E0B"}, Pattern: 1},
		}},
	}
	for _, d := range defs {
		if *d.dst, err = f.NewStyle(d.style); err != nil {
			return nil, fmt.Errorf("xlsx style: %w", err)
		}
	}
	return &s, nil
}

func (s *xlsxStyles) forTone(t Tone) int {
	switch t {
	case ToneAlert:
		return s.alert
	case ToneMuted:
		return s.muted
	case ToneTotal:
		return s.total
	}
	return 0
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

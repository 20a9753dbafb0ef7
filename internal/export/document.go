// Package export renders tabular report documents to CSV, PDF and XLSX.
package export

import (
	"fmt"
	"strconv"
)

// Tone highlight of a cell
type Tone int

const (
	ToneNone  Tone = iota
	ToneAlert      // fraud day, low activity
	ToneMuted      // explained absence
	ToneTotal      // grand total row
)

// Cell one table cell
type Cell struct {
	Text string
	Tone Tone
}

// Section a titled table
type Section struct {
	Title   string
	Headers []string
	Rows    [][]Cell
	Widths  []float64 // mm, PDF only; zero means evenly spread
}

// Document what a report export contains
type Document struct {
	Title    string
	Subtitle string
	Sheet    string // xlsx sheet name
	Sections []Section

	NotesTitle string
	Notes      []string

	Landscape bool
}

// Format export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ContentType MIME type of f
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatPDF, FormatXLSX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Render dispatches on f
func Render(doc *Document, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(doc)
	case FormatPDF:
		return PDF(doc)
	case FormatXLSX:
		return XLSX(doc)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// Plain row of untoned cells
func Plain(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = Cell{Text: v}
	}
	return row
}

// Int formats n as a cell
func Int[T ~int | ~int64](n T) Cell {
	return Cell{Text: strconv.FormatInt(int64(n), 10)}
}

package export

import (
	"bytes"
	"encoding/csv"
)

// CSV writes sections one after another, each preceded by a blank line and
// its title when it has one. Notes follow under NotesTitle.
func CSV(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, s := range doc.Sections {
		if s.Title != "" {
			if err := w.Write(nil); err != nil {
				return nil, err
			}
			if err := w.Write([]string{s.Title}); err != nil {
				return nil, err
			}
		}
		if err := w.Write(s.Headers); err != nil {
			return nil, err
		}
		for _, row := range s.Rows {
			rec := make([]string, len(row))
			for i, c := range row {
				rec[i] = c.Text
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}

	if doc.NotesTitle != "" || len(doc.Notes) > 0 {
		_ = w.Write(nil)
		if doc.NotesTitle != "" {
			_ = w.Write([]string{doc.NotesTitle})
		}
		for _, n := range doc.Notes {
			_ = w.Write([]string{n})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

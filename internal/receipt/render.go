package receipt

import "fmt"

// Receipts printable output of one transaction.
type Receipts struct {
	HTML    string
	Thermal []byte
}

// Render produces tx.Sheets copies in both formats. Invalid input yields a
// *errors.ValidationError and no output.
func Render(tx *Transaction) (*Receipts, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	html, err := renderHTML(tx)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	var thermal []byte
	for i := 1; i <= tx.Sheets; i++ {
		thermal = append(thermal, thermalFragment(tx, i, tx.Sheets)...)
	}

	return &Receipts{HTML: html, Thermal: thermal}, nil
}

// Thermal renders only the thermal stream.
func Thermal(tx *Transaction) ([]byte, error) {
	r, err := Render(tx)
	if err != nil {
		return nil, err
	}
	return r.Thermal, nil
}

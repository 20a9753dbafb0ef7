package receipt

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	pkgerrors "raja-digital/pkg/errors"
)

// MIMEThermal content type of the thermal download
const MIMEThermal = "application/octet-stream"

// Transaction the fields a printed SIJ needs. Amount is already computed
// server-side and printed as-is.
type Transaction struct {
	TransactionID string `json:"transaction_id"`
	DriverName    string `json:"driver_name"`
	Plate         string `json:"plate"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	AdminName     string `json:"admin_name"`
	QRISRef       string `json:"qris_ref"`
	Amount        int64  `json:"amount"`
	Sheets        int    `json:"sheets"`
}

// priceTable list price per category
var priceTable = map[string]int64{
	"standar": 40000,
	"reg":     40000,
	"premium": 60000,
}

// ListPrice returns the list price of a category and whether it is known.
// Used for the input form preview before a transaction exists.
func ListPrice(category string) (int64, bool) {
	p, ok := priceTable[strings.ToLower(strings.TrimSpace(category))]
	return p, ok
}

// IsPremium reports whether the category prints as premium.
func IsPremium(category string) bool {
	p, ok := ListPrice(category)
	return ok && p == priceTable["premium"]
}

// CategoryLabel short upper-case label for the thermal ticket.
func CategoryLabel(category string) string {
	if IsPremium(category) {
		return "PREMIUM"
	}
	return "STANDAR"
}

// ServiceLabel label shown on the HTML ticket.
func ServiceLabel(category string) string {
	if IsPremium(category) {
		return "Grab Premium"
	}
	return "Grab Standar"
}

// FileName download name of the thermal stream.
func FileName(transactionID string) string {
	return "SIJ_" + transactionID + ".bin"
}

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah formats an amount with Indonesian grouping, e.g. "Rp 55.000".
func FormatRupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}

// Validate checks that every printed field is present and sheets >= 1.
func (tx *Transaction) Validate() error {
	if tx == nil {
		return pkgerrors.NewValidation("", "transaksi kosong")
	}
	required := []struct {
		field string
		value string
	}{
		{"transaction_id", tx.TransactionID},
		{"driver_name", tx.DriverName},
		{"plate", tx.Plate},
		{"category", tx.Category},
		{"date", tx.Date},
		{"time", tx.Time},
		{"admin_name", tx.AdminName},
		{"qris_ref", tx.QRISRef},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return pkgerrors.NewValidation(r.field, "wajib diisi")
		}
	}
	if tx.Amount <= 0 {
		return pkgerrors.NewValidation("amount", "harus lebih dari 0")
	}
	if tx.Sheets < 1 {
		return pkgerrors.Validationf("sheets", "minimal 1, didapat %d", tx.Sheets)
	}
	return nil
}

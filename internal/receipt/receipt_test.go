package receipt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "raja-digital/pkg/errors"
)

func sampleTx() *Transaction {
	return &Transaction{
		TransactionID: "driver00120240101123",
		DriverName:    "Ahmad Rizki",
		Plate:         "B 1000 XY",
		Category:      "standar",
		Date:          "2024-01-01",
		Time:          "08:15:30",
		AdminName:     "Admin Satu",
		QRISRef:       "QRIS-ABC123",
		Amount:        40000,
		Sheets:        1,
	}
}

func TestRender_CopyCount(t *testing.T) {
	for _, sheets := range []int{1, 3, 5} {
		tx := sampleTx()
		tx.Sheets = sheets

		r, err := Render(tx)
		require.NoError(t, err)

		assert.Equal(t, sheets, strings.Count(r.HTML, `<div class="ticket">`), "sheets=%d", sheets)
		assert.Equal(t, sheets, bytes.Count(r.Thermal, gsPartialCut), "sheets=%d", sheets)
		assert.Equal(t, sheets, bytes.Count(r.Thermal, escInit), "sheets=%d", sheets)
	}
}

func TestRender_FragmentsAreSelfContained(t *testing.T) {
	tx := sampleTx()
	tx.Sheets = 3

	r, err := Render(tx)
	require.NoError(t, err)

	fragments := bytes.SplitAfter(r.Thermal, gsPartialCut)
	fragments = fragments[:len(fragments)-1] // trailing empty remainder
	require.Len(t, fragments, 3)

	for i, f := range fragments {
		assert.True(t, bytes.HasPrefix(f, escInit), "fragment %d must start with reset", i)
		assert.True(t, bytes.HasSuffix(f, gsPartialCut), "fragment %d must end with cut", i)
		assert.Contains(t, string(f), "Lembar   : "+string(rune('1'+i))+" / 3")
	}
}

func TestRender_HTMLHasNoSheetNumbering(t *testing.T) {
	tx := sampleTx()
	tx.Sheets = 2

	r, err := Render(tx)
	require.NoError(t, err)
	assert.NotContains(t, r.HTML, "Lembar")
	assert.Contains(t, r.HTML, "SURAT IZIN JALAN - KOPERASI RAJA")
	assert.Contains(t, r.HTML, "2024-01-01 | 08:15")
	assert.Contains(t, r.HTML, "Grab Standar")
	assert.Contains(t, r.HTML, "Ref. : QRIS-ABC123")
}

func TestRender_AmountVerbatim(t *testing.T) {
	tx := sampleTx()
	tx.Category = "premium"
	tx.Amount = 55000

	r, err := Render(tx)
	require.NoError(t, err)

	assert.Contains(t, r.HTML, "Rp 55.000")
	assert.NotContains(t, r.HTML, "60.000")
	assert.Contains(t, string(r.Thermal), "Rp 55.000")
	assert.NotContains(t, string(r.Thermal), "60.000")
	assert.Contains(t, string(r.Thermal), "Kategori : PREMIUM")
	assert.Contains(t, r.HTML, "Grab Premium")
}

func TestRender_EscapesHTML(t *testing.T) {
	tx := sampleTx()
	tx.DriverName = "<script>x</script>"

	r, err := Render(tx)
	require.NoError(t, err)
	assert.NotContains(t, r.HTML, "<script>")
}

func TestRender_TruncatesDriverNameOnThermal(t *testing.T) {
	tx := sampleTx()
	tx.DriverName = "Muhammad Abdurrahman Wahid Santoso"

	r, err := Render(tx)
	require.NoError(t, err)
	assert.Contains(t, string(r.Thermal), "Driver   : Muhammad Abdurrahman\n")
	assert.Contains(t, r.HTML, tx.DriverName)
}

func TestRender_Rejects(t *testing.T) {
	cases := map[string]func(tx *Transaction){
		"zero sheets":     func(tx *Transaction) { tx.Sheets = 0 },
		"negative sheets": func(tx *Transaction) { tx.Sheets = -2 },
		"no id":           func(tx *Transaction) { tx.TransactionID = "" },
		"no plate":        func(tx *Transaction) { tx.Plate = " " },
		"no qris":         func(tx *Transaction) { tx.QRISRef = "" },
		"no admin":        func(tx *Transaction) { tx.AdminName = "" },
		"no amount":       func(tx *Transaction) { tx.Amount = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tx := sampleTx()
			mutate(tx)
			r, err := Render(tx)
			assert.Nil(t, r)
			assert.True(t, pkgerrors.IsValidation(err), "got %v", err)
		})
	}

	_, err := Render(nil)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestListPrice(t *testing.T) {
	p, ok := ListPrice("standar")
	assert.True(t, ok)
	assert.EqualValues(t, 40000, p)

	p, ok = ListPrice("REG")
	assert.True(t, ok)
	assert.EqualValues(t, 40000, p)

	p, ok = ListPrice("premium")
	assert.True(t, ok)
	assert.EqualValues(t, 60000, p)

	_, ok = ListPrice("vip")
	assert.False(t, ok)

	assert.Equal(t, "STANDAR", CategoryLabel("vip"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "SIJ_driver00120240101123.bin", FileName("driver00120240101123"))
	assert.Equal(t, "application/octet-stream", MIMEThermal)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 40.000", FormatRupiah(40000))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
}

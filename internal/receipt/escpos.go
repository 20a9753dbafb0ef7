package receipt

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control sequences for a 58mm printer.
var (
	escInit       = []byte{0x1B, 0x40}
	escAlignLeft  = []byte{0x1B, 0x61, 0x00}
	escAlignCtr   = []byte{0x1B, 0x61, 0x01}
	escBoldOn     = []byte{0x1B, 0x45, 0x01}
	escBoldOff    = []byte{0x1B, 0x45, 0x00}
	gsDoubleH     = []byte{0x1D, 0x21, 0x11}
	gsNormalSize  = []byte{0x1D, 0x21, 0x00}
	gsPartialCut  = []byte{0x1D, 0x56, 0x41, 0x00}
	lineFeed      = []byte{0x0A}
	thermalDashes = strings.Repeat("-", 32) + "\n"
)

const maxDriverNameWidth = 20

// escpos accumulates one thermal fragment.
type escpos struct {
	buf bytes.Buffer
}

func (e *escpos) raw(seq ...[]byte) *escpos {
	for _, s := range seq {
		e.buf.Write(s)
	}
	return e
}

func (e *escpos) text(s string) *escpos {
	e.buf.WriteString(s)
	return e
}

func (e *escpos) line(format string, args ...interface{}) *escpos {
	e.buf.WriteString(fmt.Sprintf(format, args...))
	e.buf.WriteByte('\n')
	return e
}

// emphasised bold, double-height text followed by a newline
func (e *escpos) emphasised(s string) *escpos {
	return e.raw(escBoldOn, gsDoubleH).text(s + "\n").raw(gsNormalSize, escBoldOff)
}

// thermalFragment renders copy i of n. Each fragment resets the printer and
// ends with a partial cut so it prints correctly on its own.
func thermalFragment(tx *Transaction, i, n int) []byte {
	e := &escpos{}
	e.raw(escInit, escAlignCtr).
		emphasised("RAJA DIGITAL SYSTEM").
		text("SIJ - Soetta Airport\n").
		text(thermalDashes).
		emphasised(tx.TransactionID).
		text(thermalDashes)

	e.raw(escAlignLeft).
		line("Driver   : %s", truncateRunes(tx.DriverName, maxDriverNameWidth)).
		line("Kategori : %s", CategoryLabel(tx.Category)).
		line("Tanggal  : %s", tx.Date).
		line("Jam      : %s", tx.Time).
		line("Admin    : %s", tx.AdminName).
		line("Lembar   : %d / %d", i, n)

	e.raw(escAlignCtr).
		text(thermalDashes).
		emphasised(FormatRupiah(tx.Amount)).
		text(thermalDashes).
		line("QRIS: %s", tx.QRISRef).
		raw(lineFeed, lineFeed, gsPartialCut)

	return e.buf.Bytes()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

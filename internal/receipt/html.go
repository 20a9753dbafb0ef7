package receipt

import (
	"bytes"
	"html/template"
)

type ticketView struct {
	TransactionID string
	DriverName    string
	Plate         string
	Service       string
	Date          string
	Time          string
	AdminName     string
	Amount        string
	QRISRef       string
}

type documentView struct {
	Title   string
	Tickets []ticketView
}

var htmlTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: 58mm auto; margin: 0; }
body { font-family: 'Courier New', monospace; font-size: 11px; margin: 0; }
.ticket { width: 54mm; padding: 2mm; page-break-after: always; }
.header { text-align: center; font-weight: bold; font-size: 12px; border-bottom: 1px dashed #000; padding-bottom: 2mm; }
.tx-id { text-align: center; font-weight: bold; font-size: 14px; margin: 2mm 0; }
table.details { width: 100%; border-collapse: collapse; }
table.details td { padding: 0.5mm 0; vertical-align: top; }
table.details td.label { width: 16mm; }
.message { text-align: center; font-style: italic; margin-top: 2mm; border-top: 1px dashed #000; padding-top: 2mm; }
.footer { text-align: center; font-size: 9px; margin-top: 2mm; }
</style>
</head>
<body>
{{range .Tickets}}<div class="ticket">
<div class="header">SURAT IZIN JALAN - KOPERASI RAJA</div>
<div class="tx-id">{{.TransactionID}}</div>
<table class="details">
<tr><td class="label">Driver</td><td>: {{.DriverName}}</td></tr>
<tr><td class="label">Plat No.</td><td>: {{.Plate}}</td></tr>
<tr><td class="label">Kategori</td><td>: {{.Service}}</td></tr>
<tr><td class="label">Tanggal</td><td>: {{.Date}} | {{.Time}}</td></tr>
<tr><td class="label">Admin</td><td>: {{.AdminName}}</td></tr>
<tr><td class="label">Jumlah</td><td>: {{.Amount}}</td></tr>
</table>
<div class="message">Harap selalu menjaga performa, pelayanan dan kedisiplinan dalam bekerja.</div>
<div class="footer">Ref. : {{.QRISRef}}</div>
</div>
{{end}}</body>
</html>
`))

// renderHTML one document with tx.Sheets identical ticket blocks.
func renderHTML(tx *Transaction) (string, error) {
	t := ticketView{
		TransactionID: tx.TransactionID,
		DriverName:    tx.DriverName,
		Plate:         tx.Plate,
		Service:       ServiceLabel(tx.Category),
		Date:          tx.Date,
		Time:          shortTime(tx.Time),
		AdminName:     tx.AdminName,
		Amount:        FormatRupiah(tx.Amount),
		QRISRef:       tx.QRISRef,
	}
	doc := documentView{Title: "SIJ " + tx.TransactionID, Tickets: make([]ticketView, tx.Sheets)}
	for i := range doc.Tickets {
		doc.Tickets[i] = t
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// shortTime HH:MM:SS -> HH:MM
func shortTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

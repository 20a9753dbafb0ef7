package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"raja-digital/internal/dto"
	"raja-digital/internal/export"
	"raja-digital/internal/receipt"
	"raja-digital/internal/repository"
	"raja-digital/internal/weekly"
)

// ── export errors ──

var (
	ErrExportFormat       = errors.New("Format export tidak didukung")
	ErrExportGenerateFail = errors.New("Gagal membuat file export")
)

const auditExportLimit = 10000

// dayLabels Monday first
var dayLabels = [weekly.DaysPerWeek]string{"Sen", "Sel", "Rab", "Kam", "Jum", "Sab", "Min"}

// File a rendered download
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService report downloads. Every export is rendered in memory and
// handed to the handler as a File.
type ExportService interface {
	Weekly(ctx context.Context, startDate, endDate string, f export.Format) (*File, error)
	Drivers(ctx context.Context, f export.Format) (*File, error)
	SIJ(ctx context.Context, r dto.DateRangeRequest, f export.Format) (*File, error)
	Ritase(ctx context.Context, r dto.DateRangeRequest, f export.Format) (*File, error)
	Revenue(ctx context.Context, req *dto.RevenueRequest, f export.Format) (*File, error)
	Audit(ctx context.Context, date string) (*File, error)
}

type exportService struct {
	repo    *repository.Repository
	weekly  WeeklyReportService
	revenue RevenueService
	logger  *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(
	repo *repository.Repository,
	weeklySvc WeeklyReportService,
	revenueSvc RevenueService,
	logger *zap.Logger,
) ExportService {
	return &exportService{repo: repo, weekly: weeklySvc, revenue: revenueSvc, logger: logger}
}

func (s *exportService) render(doc *export.Document, f export.Format, base string) (*File, error) {
	data, err := export.Render(doc, f)
	if err != nil {
		s.logger.Error("render export failed", zap.String("file", base), zap.String("format", string(f)), zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return &File{
		Name:        base + "." + string(f),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// periodLabel subtitle prefix of a date-range export
func periodLabel(from, to string) string {
	switch {
	case from != "" && to != "":
		return fmt.Sprintf("Periode: %s s/d %s", from, to)
	case from != "":
		return "Dari: " + from
	case to != "":
		return "Sampai: " + to
	}
	return "Semua data"
}

// ────────────────────── Weekly ──────────────────────

func (s *exportService) Weekly(ctx context.Context, startDate, endDate string, f export.Format) (*File, error) {
	w, err := weekly.ParseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	report, err := s.weekly.Build(ctx, w)
	if err != nil {
		return nil, err
	}
	summary, err := weekly.Aggregate(w, report.Drivers)
	if err != nil {
		return nil, err
	}

	doc := weeklyDocument(summary, f == export.FormatPDF)
	return s.render(doc, f, fmt.Sprintf("laporan_mingguan_%s_%s", w.StartDate(), w.EndDate()))
}

// weeklyDocument lays out both partitions and the low-activity conclusion.
// The PDF packs khd|rts into one cell per day; tabular formats split them.
func weeklyDocument(sum *weekly.Summary, compact bool) *export.Document {
	doc := &export.Document{
		Title:      "LAPORAN MINGGUAN - RAJA Digital System",
		Subtitle:   fmt.Sprintf("Periode: %s s/d %s", sum.Window.StartDate(), sum.Window.EndDate()),
		Sheet:      "Laporan Mingguan",
		NotesTitle: "KESIMPULAN",
		Landscape:  true,
		Sections: []export.Section{
			weeklySection("DRIVER STANDAR", sum.Standar, compact),
			weeklySection("DRIVER PREMIUM", sum.Premium, compact),
		},
		Notes: []string{
			lowActivityNote("Driver Standar", sum.LowActivity.Standar),
			lowActivityNote("Driver Premium", sum.LowActivity.Premium),
		},
	}
	return doc
}

func weeklySection(title string, drivers []weekly.DriverWeekly, compact bool) export.Section {
	sec := export.Section{Title: title, Headers: []string{"No", "Nama Driver", "Nopol"}}
	for _, dl := range dayLabels {
		if compact {
			sec.Headers = append(sec.Headers, dl+" KHD|RTS")
		} else {
			sec.Headers = append(sec.Headers, dl+" KHD", dl+" RTS")
		}
	}
	sec.Headers = append(sec.Headers, "Total KHD", "Total RTS")
	if compact {
		sec.Widths = []float64{12, 35, 20, 20, 20, 20, 20, 20, 20, 20, 14, 14}
	}

	for i, drv := range drivers {
		row := []export.Cell{export.Int(i + 1), {Text: drv.Name}, {Text: drv.Plate}}
		for _, d := range drv.Daily {
			row = append(row, weeklyDayCells(d, compact)...)
		}
		total := export.Int(drv.TotalKHD)
		if drv.TotalKHD < weekly.LowActivityThreshold {
			total.Tone = export.ToneAlert
		}
		row = append(row, total, export.Int(drv.TotalRTS))
		sec.Rows = append(sec.Rows, row)
	}
	return sec
}

// weeklyDayCells shows the absence reason in place of khd when no permit was
// issued and a reason exists.
func weeklyDayCells(d weekly.DailyActivity, compact bool) []export.Cell {
	var tone export.Tone
	switch weekly.Classify(d) {
	case weekly.DayFraud:
		tone = export.ToneAlert
	case weekly.DayExplainedAbsence:
		tone = export.ToneMuted
	}

	khd := strconv.Itoa(d.KHD)
	if d.KHD == 0 && strings.TrimSpace(d.Reason) != "" {
		khd = d.Reason
	}
	if compact {
		text := khd
		if tone != export.ToneMuted {
			text = fmt.Sprintf("%d|%d", d.KHD, d.RTS)
		}
		return []export.Cell{{Text: text, Tone: tone}}
	}
	return []export.Cell{{Text: khd, Tone: tone}, {Text: strconv.Itoa(d.RTS), Tone: tone}}
}

func lowActivityNote(label string, drivers []weekly.DriverWeekly) string {
	names := "-"
	if len(drivers) > 0 {
		list := make([]string, len(drivers))
		for i, d := range drivers {
			list[i] = d.Name
		}
		names = strings.Join(list, ", ")
	}
	return fmt.Sprintf("%s (KHD < %d): %d driver -> %s", label, weekly.LowActivityThreshold, len(drivers), names)
}

// ────────────────────── Drivers ──────────────────────

func (s *exportService) Drivers(ctx context.Context, f export.Format) (*File, error) {
	drivers, err := s.repo.Driver.List(ctx, repository.DriverFilter{Sort: repository.Sort{By: "name"}})
	if err != nil {
		return nil, err
	}

	headers := []string{"driver_id", "name", "phone", "plate", "category", "status", "mismatch_count", "total_sij_month"}
	if f != export.FormatCSV {
		headers = []string{"Driver ID", "Nama", "Telepon", "Plat", "Kategori", "Status", "Mismatch", "SIJ Bulan"}
	}
	sec := export.Section{Headers: headers}
	for _, d := range drivers {
		sec.Rows = append(sec.Rows, []export.Cell{
			{Text: d.DriverID}, {Text: d.Name}, {Text: d.Phone}, {Text: d.Plate},
			{Text: d.Category}, {Text: d.Status},
			export.Int(d.MismatchCount), export.Int(d.TotalSIJMonth),
		})
	}

	doc := &export.Document{
		Title:     "RAJA Digital System - Data Driver",
		Sheet:     "Drivers",
		Sections:  []export.Section{sec},
		Landscape: true,
	}
	return s.render(doc, f, "drivers")
}

// ────────────────────── SIJ ──────────────────────

func (s *exportService) SIJ(ctx context.Context, r dto.DateRangeRequest, f export.Format) (*File, error) {
	if f == export.FormatXLSX {
		return nil, ErrExportFormat
	}
	txs, err := s.repo.SIJ.List(ctx, repository.SIJFilter{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Sort:     repository.Sort{By: "date", Dir: "desc"},
	})
	if err != nil {
		return nil, err
	}

	var sec export.Section
	var revenue int64
	var sheets int
	if f == export.FormatCSV {
		sec.Headers = []string{"transaction_id", "driver_id", "driver_name", "category", "date",
			"time", "sheets", "amount", "qris_ref", "admin_name", "shift", "status"}
		for _, t := range txs {
			sec.Rows = append(sec.Rows, []export.Cell{
				{Text: t.TransactionID}, {Text: t.DriverID}, {Text: t.DriverName}, {Text: t.Category},
				{Text: t.Date}, {Text: t.Time}, export.Int(t.Sheets), export.Int(t.Amount),
				{Text: t.QRISRef}, {Text: t.AdminName}, {Text: t.Shift}, {Text: t.Status},
			})
		}
		return s.render(&export.Document{Sections: []export.Section{sec}},
			f, fmt.Sprintf("sij_%s_%s", orAll(r.DateFrom), orAll(r.DateTo)))
	}

	sec.Headers = []string{"No", "Transaction ID", "Driver", "Kategori", "Tanggal", "Jam",
		"Sheet", "Jumlah", "QRIS Ref", "Admin", "Shift"}
	sec.Widths = []float64{10, 40, 40, 18, 20, 16, 12, 24, 35, 35, 17}
	for i, t := range txs {
		revenue += t.Amount
		sheets += t.Sheets
		sec.Rows = append(sec.Rows, []export.Cell{
			export.Int(i + 1), {Text: t.TransactionID}, {Text: t.DriverName}, {Text: t.Category},
			{Text: t.Date}, {Text: t.Time}, export.Int(t.Sheets), {Text: receipt.FormatRupiah(t.Amount)},
			{Text: t.QRISRef}, {Text: t.AdminName}, {Text: t.Shift},
		})
	}
	doc := &export.Document{
		Title: "RAJA Digital System - Laporan SIJ",
		Subtitle: fmt.Sprintf("%s | Total: %d transaksi | Revenue: %s | Sheets: %d",
			periodLabel(r.DateFrom, r.DateTo), len(txs), receipt.FormatRupiah(revenue), sheets),
		Sections:  []export.Section{sec},
		Landscape: true,
	}
	return s.render(doc, f, fmt.Sprintf("sij_report_%s_%s", orAll(r.DateFrom), orAll(r.DateTo)))
}

// ────────────────────── Ritase ──────────────────────

func (s *exportService) Ritase(ctx context.Context, r dto.DateRangeRequest, f export.Format) (*File, error) {
	if f == export.FormatXLSX {
		return nil, ErrExportFormat
	}
	trips, err := s.repo.Ritase.List(ctx, repository.RitaseFilter{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Sort:     repository.Sort{By: "date", Dir: "desc"},
	})
	if err != nil {
		return nil, err
	}

	var sec export.Section
	doc := &export.Document{Landscape: true}
	if f == export.FormatCSV {
		sec.Headers = []string{"id", "driver_id", "driver_name", "date", "waktu_ritase", "notes", "admin_name", "shift"}
		for _, t := range trips {
			sec.Rows = append(sec.Rows, []export.Cell{
				export.Int(t.ID), {Text: t.DriverID}, {Text: t.DriverName}, {Text: t.Date},
				{Text: t.WaktuRitase}, {Text: t.Notes}, {Text: t.AdminName}, {Text: t.Shift},
			})
		}
	} else {
		sec.Headers = []string{"No", "Driver", "Driver ID", "Tanggal", "Waktu Ritase", "Catatan", "Admin", "Shift"}
		for i, t := range trips {
			sec.Rows = append(sec.Rows, []export.Cell{
				export.Int(i + 1), {Text: t.DriverName}, {Text: t.DriverID}, {Text: t.Date},
				{Text: t.WaktuRitase}, {Text: t.Notes}, {Text: t.AdminName}, {Text: t.Shift},
			})
		}
		doc.Title = "RAJA Digital System - Laporan Ritase"
		doc.Subtitle = fmt.Sprintf("%s | Total: %d ritase", periodLabel(r.DateFrom, r.DateTo), len(trips))
	}
	doc.Sections = []export.Section{sec}
	return s.render(doc, f, fmt.Sprintf("ritase_%s_%s", orAll(r.DateFrom), orAll(r.DateTo)))
}

// ────────────────────── Revenue ──────────────────────

var revenuePeriodLabels = map[string]string{
	PeriodDaily:   "Harian",
	PeriodWeekly:  "Mingguan",
	PeriodMonthly: "Bulanan",
}

func (s *exportService) Revenue(ctx context.Context, req *dto.RevenueRequest, f export.Format) (*File, error) {
	if f == export.FormatXLSX {
		return nil, ErrExportFormat
	}
	report, err := s.revenue.Report(ctx, req)
	if err != nil {
		return nil, err
	}

	money := func(v int64) export.Cell { return export.Cell{Text: receipt.FormatRupiah(v)} }
	if f == export.FormatCSV {
		money = func(v int64) export.Cell { return export.Int(v) }
	}

	sec := export.Section{Headers: []string{"period_label", "qty_standar", "revenue_standar",
		"qty_premium", "revenue_premium", "total_revenue"}}
	if f == export.FormatPDF {
		sec.Headers = []string{"Periode / Jam", "Qty Standar", "Revenue Standar",
			"Qty Premium", "Revenue Premium", "Total Revenue"}
	}

	rowOf := func(r repository.RevenueRow, tone export.Tone) []export.Cell {
		row := []export.Cell{
			{Text: r.PeriodLabel}, export.Int(r.QtyStandar), money(r.RevenueStandar),
			export.Int(r.QtyPremium), money(r.RevenuePremium), money(r.TotalRevenue),
		}
		for i := range row {
			row[i].Tone = tone
		}
		return row
	}
	for _, r := range report.Rows {
		sec.Rows = append(sec.Rows, rowOf(r, export.ToneNone))
	}
	sec.Rows = append(sec.Rows, rowOf(report.GrandTotal(), export.ToneTotal))

	meta := report.Meta
	doc := &export.Document{
		Title:     "Revenue Report - " + revenuePeriodLabels[meta.Period],
		Subtitle:  fmt.Sprintf("Periode: %s s/d %s", meta.DateFrom, meta.DateTo),
		Sections:  []export.Section{sec},
		Landscape: true,
	}
	return s.render(doc, f, fmt.Sprintf("revenue_%s_%s_%s", meta.Period, meta.DateFrom, meta.DateTo))
}

// ────────────────────── Audit ──────────────────────

func (s *exportService) Audit(ctx context.Context, date string) (*File, error) {
	logs, err := s.repo.Audit.List(ctx, repository.AuditFilter{
		Date:  date,
		Sort:  repository.Sort{By: "date", Dir: "desc"},
		Limit: auditExportLimit,
	})
	if err != nil {
		return nil, err
	}

	sec := export.Section{Headers: []string{"date", "driver_id", "has_sij", "has_trip", "mismatch"}}
	for _, l := range logs {
		sec.Rows = append(sec.Rows, export.Plain(
			l.Date, l.DriverID,
			strconv.FormatBool(l.HasSIJ), strconv.FormatBool(l.HasTrip), strconv.FormatBool(l.Mismatch),
		))
	}
	return s.render(&export.Document{Sections: []export.Section{sec}}, export.FormatCSV, "audit_"+orAll(date))
}


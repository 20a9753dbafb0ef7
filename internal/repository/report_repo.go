package repository

import (
	"context"

	"gorm.io/gorm"
)

// RevenueRow one bucket of the revenue report
type RevenueRow struct {
	PeriodLabel    string `json:"period_label"`
	QtyStandar     int64  `json:"qty_standar"`
	RevenueStandar int64  `json:"revenue_standar"`
	QtyPremium     int64  `json:"qty_premium"`
	RevenuePremium int64  `json:"revenue_premium"`
	TotalRevenue   int64  `json:"total_revenue"`
}

// DailyTotal permits and revenue on one date
type DailyTotal struct {
	Date    string `json:"date"`
	Count   int64  `json:"sij"`
	Revenue int64  `json:"revenue"`
}

// ReportRepository aggregate queries over SIJ transactions
type ReportRepository interface {
	RevenueByHour(ctx context.Context, date string) ([]RevenueRow, error)
	RevenueByDate(ctx context.Context, from, to string) ([]RevenueRow, error)
	DailyTotals(ctx context.Context, from, to string) ([]DailyTotal, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo creates a ReportRepository
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

const revenueColumns = `
	COUNT(*) FILTER (WHERE category = 'standar') AS qty_standar,
	COALESCE(SUM(amount) FILTER (WHERE category = 'standar'), 0) AS revenue_standar,
	COUNT(*) FILTER (WHERE category = 'premium') AS qty_premium,
	COALESCE(SUM(amount) FILTER (WHERE category = 'premium'), 0) AS revenue_premium`

func (r *reportRepo) RevenueByHour(ctx context.Context, date string) ([]RevenueRow, error) {
	var rows []RevenueRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT LPAD(EXTRACT(HOUR FROM time::time)::int::text, 2, '0') || ':00' AS period_label,`+revenueColumns+`
		FROM sij_transactions
		WHERE date = ? AND status = 'active'
		GROUP BY EXTRACT(HOUR FROM time::time)
		ORDER BY EXTRACT(HOUR FROM time::time)`, date).
		Scan(&rows).Error
	return withTotals(rows), err
}

func (r *reportRepo) RevenueByDate(ctx context.Context, from, to string) ([]RevenueRow, error) {
	var rows []RevenueRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT date AS period_label,`+revenueColumns+`
		FROM sij_transactions
		WHERE date >= ? AND date <= ? AND status = 'active'
		GROUP BY date
		ORDER BY date`, from, to).
		Scan(&rows).Error
	return withTotals(rows), err
}

// DailyTotals only dates with transactions are returned.
func (r *reportRepo) DailyTotals(ctx context.Context, from, to string) ([]DailyTotal, error) {
	var rows []DailyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT date, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS revenue
		FROM sij_transactions
		WHERE date >= ? AND date <= ? AND status = 'active'
		GROUP BY date
		ORDER BY date`, from, to).
		Scan(&rows).Error
	return rows, err
}

func withTotals(rows []RevenueRow) []RevenueRow {
	for i := range rows {
		rows[i].TotalRevenue = rows[i].RevenueStandar + rows[i].RevenuePremium
	}
	return rows
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"raja-digital/internal/model"
)

var sijSortCols = map[string]bool{
	"transaction_id": true, "driver_name": true, "driver_id": true, "date": true,
	"time": true, "admin_name": true, "shift": true, "amount": true,
	"sheets": true, "status": true, "created_at": true,
}

// SIJFilter list filters for SIJ transactions
type SIJFilter struct {
	Date        string
	DateFrom    string
	DateTo      string
	Shift       string
	Search      string
	IncludeVoid bool
	Sort        Sort
	Limit       int
}

// SIJTotals count and revenue of active transactions
type SIJTotals struct {
	Count   int64
	Revenue int64
}

// SIJRepository SIJ transaction data access
type SIJRepository interface {
	Create(ctx context.Context, tx *model.SIJTransaction) error
	GetByID(ctx context.Context, id string) (*model.SIJTransaction, error)
	GetWithPlate(ctx context.Context, id string) (*model.SIJTransaction, error)
	List(ctx context.Context, f SIJFilter) ([]model.SIJTransaction, error)
	ExistsActive(ctx context.Context, driverID, date string) (bool, error)
	Update(ctx context.Context, tx *model.SIJTransaction) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountActiveByDriverDate(ctx context.Context, from, to string) ([]DayCount, error)
	Totals(ctx context.Context, dateFrom, dateTo, shift string) (*SIJTotals, error)
}

type sijRepo struct {
	db *gorm.DB
}

// NewSIJRepo creates a SIJRepository
func NewSIJRepo(db *gorm.DB) SIJRepository {
	return &sijRepo{db: db}
}

func (r *sijRepo) Create(ctx context.Context, tx *model.SIJTransaction) error {
	return r.db.WithContext(ctx).Omit("Plate").Create(tx).Error
}

func (r *sijRepo) GetByID(ctx context.Context, id string) (*model.SIJTransaction, error) {
	var tx model.SIJTransaction
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", id).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetWithPlate loads a transaction with the driver's current plate.
func (r *sijRepo) GetWithPlate(ctx context.Context, id string) (*model.SIJTransaction, error) {
	var tx model.SIJTransaction
	err := r.db.WithContext(ctx).
		Table("sij_transactions AS s").
		Select("s.*, COALESCE(d.plate, '') AS plate").
		Joins("LEFT JOIN drivers d ON d.driver_id = s.driver_id").
		Where("s.transaction_id = ?", id).
		Take(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *sijRepo) List(ctx context.Context, f SIJFilter) ([]model.SIJTransaction, error) {
	var list []model.SIJTransaction
	db := r.db.WithContext(ctx)

	if !f.IncludeVoid {
		db = db.Where("status = ?", model.SIJActive)
	}
	if f.Date != "" {
		db = db.Where("date = ?", f.Date)
	}
	if f.DateFrom != "" {
		db = db.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		db = db.Where("date <= ?", f.DateTo)
	}
	if f.Shift != "" {
		db = db.Where("shift = ?", f.Shift)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		db = db.Where("(driver_name ILIKE ? OR driver_id ILIKE ? OR transaction_id ILIKE ?)", p, p, p)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	err := db.Order(orderClause(f.Sort, sijSortCols, "created_at")).Find(&list).Error
	return list, err
}

func (r *sijRepo) ExistsActive(ctx context.Context, driverID, date string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SIJTransaction{}).
		Where("driver_id = ? AND date = ? AND status = ?", driverID, date, model.SIJActive).
		Count(&n).Error
	return n > 0, err
}

func (r *sijRepo) Update(ctx context.Context, tx *model.SIJTransaction) error {
	return r.db.WithContext(ctx).Omit("Plate").Save(tx).Error
}

func (r *sijRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.SIJTransaction{}).
		Where("transaction_id = ?", id).
		Update("status", status).Error
}

func (r *sijRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("transaction_id = ?", id).
		Delete(&model.SIJTransaction{}).Error
}

// CountActiveByDriverDate distinct active permits per driver and date.
func (r *sijRepo) CountActiveByDriverDate(ctx context.Context, from, to string) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.WithContext(ctx).Model(&model.SIJTransaction{}).
		Select("driver_id, date, COUNT(DISTINCT transaction_id) AS count").
		Where("date >= ? AND date <= ? AND status = ?", from, to, model.SIJActive).
		Group("driver_id, date").
		Scan(&rows).Error
	return rows, err
}

// Totals sums active transactions in [dateFrom, dateTo], optionally for one shift.
func (r *sijRepo) Totals(ctx context.Context, dateFrom, dateTo, shift string) (*SIJTotals, error) {
	var t SIJTotals
	db := r.db.WithContext(ctx).Model(&model.SIJTransaction{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS revenue").
		Where("date >= ? AND date <= ? AND status = ?", dateFrom, dateTo, model.SIJActive)
	if shift != "" {
		db = db.Where("shift = ?", shift)
	}
	if err := db.Scan(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

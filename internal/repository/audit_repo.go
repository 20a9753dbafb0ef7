package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raja-digital/internal/model"
)

var auditSortCols = map[string]bool{
	"date": true, "driver_id": true, "has_sij": true, "has_trip": true, "mismatch": true,
}

// AuditFilter list filters for the audit log
type AuditFilter struct {
	Date   string
	Search string
	Sort   Sort
	Limit  int
}

// AuditRepository audit log data access
type AuditRepository interface {
	MarkSIJ(ctx context.Context, date, driverID string) error
	MarkTrip(ctx context.Context, date, driverID string) error
	ClearSIJ(ctx context.Context, date, driverID string) error
	List(ctx context.Context, f AuditFilter) ([]model.AuditLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo creates an AuditRepository
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

// MarkSIJ records a permit for the day. A day with a permit is never a mismatch.
func (r *auditRepo) MarkSIJ(ctx context.Context, date, driverID string) error {
	row := &model.AuditLog{Date: date, DriverID: driverID, HasSIJ: true}
	row.ComputeMismatch()
	return r.upsert(ctx, row, map[string]interface{}{
		"has_sij":  true,
		"mismatch": false,
	})
}

// MarkTrip records a trip for the day; mismatch when no permit exists yet.
func (r *auditRepo) MarkTrip(ctx context.Context, date, driverID string) error {
	row := &model.AuditLog{Date: date, DriverID: driverID, HasTrip: true}
	row.ComputeMismatch()
	return r.upsert(ctx, row, map[string]interface{}{
		"has_trip": true,
		"mismatch": gorm.Expr("NOT audit_log.has_sij"),
	})
}

// ClearSIJ drops the permit flag once the day has no active permit left.
func (r *auditRepo) ClearSIJ(ctx context.Context, date, driverID string) error {
	return r.db.WithContext(ctx).Model(&model.AuditLog{}).
		Where("date = ? AND driver_id = ?", date, driverID).
		Updates(map[string]interface{}{
			"has_sij":  false,
			"mismatch": gorm.Expr("has_trip"),
		}).Error
}

func (r *auditRepo) upsert(ctx context.Context, row *model.AuditLog, onConflict map[string]interface{}) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "driver_id"}},
		DoUpdates: clause.Assignments(onConflict),
	}).Create(row).Error
}

func (r *auditRepo) List(ctx context.Context, f AuditFilter) ([]model.AuditLog, error) {
	var list []model.AuditLog
	db := r.db.WithContext(ctx)

	if f.Date != "" {
		db = db.Where("date = ?", f.Date)
	}
	if f.Search != "" {
		db = db.Where("driver_id ILIKE ?", likePattern(f.Search))
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	err := db.Order(orderClause(f.Sort, auditSortCols, "date")).Find(&list).Error
	return list, err
}

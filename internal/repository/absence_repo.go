package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raja-digital/internal/model"
)

// AbsenceRepository absence reason data access
type AbsenceRepository interface {
	ListRange(ctx context.Context, from, to string) ([]model.DriverAbsence, error)
	Upsert(ctx context.Context, driverID, date, reason string) error
	Delete(ctx context.Context, driverID, date string) error
}

type absenceRepo struct {
	db *gorm.DB
}

// NewAbsenceRepo creates an AbsenceRepository
func NewAbsenceRepo(db *gorm.DB) AbsenceRepository {
	return &absenceRepo{db: db}
}

func (r *absenceRepo) ListRange(ctx context.Context, from, to string) ([]model.DriverAbsence, error) {
	var list []model.DriverAbsence
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, driver_id ASC").
		Find(&list).Error
	return list, err
}

// Upsert overwrites any previous reason for the pair.
func (r *absenceRepo) Upsert(ctx context.Context, driverID, date, reason string) error {
	row := &model.DriverAbsence{DriverID: driverID, Date: date, Reason: reason}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "driver_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason"}),
	}).Create(row).Error
}

func (r *absenceRepo) Delete(ctx context.Context, driverID, date string) error {
	return r.db.WithContext(ctx).
		Where("driver_id = ? AND date = ?", driverID, date).
		Delete(&model.DriverAbsence{}).Error
}

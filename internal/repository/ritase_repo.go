package repository

import (
	"context"

	"gorm.io/gorm"

	"raja-digital/internal/model"
)

var ritaseSortCols = map[string]bool{
	"id": true, "driver_name": true, "driver_id": true, "date": true,
	"waktu_ritase": true, "created_at": true,
}

// RitaseFilter list filters for trips
type RitaseFilter struct {
	DateFrom string
	DateTo   string
	Search   string
	Sort     Sort
}

// TripRank trips per driver
type TripRank struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name"`
	TripCount  int64  `json:"trip_count"`
}

// RitaseRepository trip data access
type RitaseRepository interface {
	Create(ctx context.Context, rt *model.Ritase) error
	GetByID(ctx context.Context, id int64) (*model.Ritase, error)
	List(ctx context.Context, f RitaseFilter) ([]model.Ritase, error)
	Update(ctx context.Context, rt *model.Ritase) error
	Delete(ctx context.Context, id int64) error
	CountByDriverDate(ctx context.Context, from, to string) ([]DayCount, error)
	CountOnDate(ctx context.Context, date string) (int64, error)
	Ranking(ctx context.Context, from, to string, limit int) ([]TripRank, error)
}

type ritaseRepo struct {
	db *gorm.DB
}

// NewRitaseRepo creates a RitaseRepository
func NewRitaseRepo(db *gorm.DB) RitaseRepository {
	return &ritaseRepo{db: db}
}

func (r *ritaseRepo) Create(ctx context.Context, rt *model.Ritase) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *ritaseRepo) GetByID(ctx context.Context, id int64) (*model.Ritase, error) {
	var rt model.Ritase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *ritaseRepo) List(ctx context.Context, f RitaseFilter) ([]model.Ritase, error) {
	var list []model.Ritase
	db := r.db.WithContext(ctx)

	if f.DateFrom != "" {
		db = db.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		db = db.Where("date <= ?", f.DateTo)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		db = db.Where("(driver_name ILIKE ? OR driver_id ILIKE ?)", p, p)
	}

	err := db.Order(orderClause(f.Sort, ritaseSortCols, "created_at")).Find(&list).Error
	return list, err
}

func (r *ritaseRepo) Update(ctx context.Context, rt *model.Ritase) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *ritaseRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Ritase{}).Error
}

func (r *ritaseRepo) CountByDriverDate(ctx context.Context, from, to string) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.WithContext(ctx).Model(&model.Ritase{}).
		Select("driver_id, date, COUNT(*) AS count").
		Where("date >= ? AND date <= ?", from, to).
		Group("driver_id, date").
		Scan(&rows).Error
	return rows, err
}

func (r *ritaseRepo) CountOnDate(ctx context.Context, date string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ritase{}).Where("date = ?", date).Count(&n).Error
	return n, err
}

// Ranking drivers with the most trips in [from, to].
func (r *ritaseRepo) Ranking(ctx context.Context, from, to string, limit int) ([]TripRank, error) {
	var rows []TripRank
	err := r.db.WithContext(ctx).Model(&model.Ritase{}).
		Select("driver_id, driver_name, COUNT(*) AS trip_count").
		Where("date >= ? AND date <= ?", from, to).
		Group("driver_id, driver_name").
		Order("trip_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"raja-digital/internal/model"
)

var driverSortCols = map[string]bool{
	"name": true, "driver_id": true, "plate": true, "category": true,
	"status": true, "mismatch_count": true, "total_sij_month": true,
}

// DriverFilter list filters for drivers
type DriverFilter struct {
	Search string
	Status string
	Sort   Sort
}

// DriverStatusCounts drivers per status
type DriverStatusCounts struct {
	Total     int64
	Active    int64
	Suspended int64
}

// DriverRepository driver data access
type DriverRepository interface {
	Create(ctx context.Context, d *model.Driver) error
	CreateBatch(ctx context.Context, drivers []model.Driver) error
	GetByID(ctx context.Context, id string) (*model.Driver, error)
	List(ctx context.Context, f DriverFilter) ([]model.Driver, error)
	ListByStatus(ctx context.Context, status string) ([]model.Driver, error)
	ListAll(ctx context.Context) ([]model.Driver, error)
	ListMismatch(ctx context.Context, limit int) ([]model.Driver, error)
	Update(ctx context.Context, d *model.Driver) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	IncrementSIJMonth(ctx context.Context, id string) error
	RefreshMismatchCount(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (*DriverStatusCounts, error)
}

type driverRepo struct {
	db *gorm.DB
}

// NewDriverRepo creates a DriverRepository
func NewDriverRepo(db *gorm.DB) DriverRepository {
	return &driverRepo{db: db}
}

func (r *driverRepo) Create(ctx context.Context, d *model.Driver) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *driverRepo) CreateBatch(ctx context.Context, drivers []model.Driver) error {
	if len(drivers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&drivers, 100).Error
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*model.Driver, error) {
	var d model.Driver
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) List(ctx context.Context, f DriverFilter) ([]model.Driver, error) {
	var drivers []model.Driver
	db := r.db.WithContext(ctx)

	if f.Search != "" {
		p := likePattern(f.Search)
		db = db.Where("(name ILIKE ? OR driver_id ILIKE ? OR plate ILIKE ?)", p, p, p)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}

	err := db.Order(orderClause(f.Sort, driverSortCols, "name")).Find(&drivers).Error
	return drivers, err
}

func (r *driverRepo) ListByStatus(ctx context.Context, status string) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("name ASC").
		Find(&drivers).Error
	return drivers, err
}

func (r *driverRepo) ListAll(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).Order("name ASC").Find(&drivers).Error
	return drivers, err
}

func (r *driverRepo) ListMismatch(ctx context.Context, limit int) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).
		Where("mismatch_count > 0").
		Order("mismatch_count DESC").
		Limit(limit).
		Find(&drivers).Error
	return drivers, err
}

func (r *driverRepo) Update(ctx context.Context, d *model.Driver) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *driverRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.Driver{}).
		Where("driver_id = ?", id).
		Update("status", status).Error
}

func (r *driverRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("driver_id = ?", id).
		Delete(&model.Driver{}).Error
}

func (r *driverRepo) IncrementSIJMonth(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Driver{}).
		Where("driver_id = ?", id).
		UpdateColumn("total_sij_month", gorm.Expr("total_sij_month + 1")).Error
}

// RefreshMismatchCount recounts the driver's mismatched audit days.
func (r *driverRepo) RefreshMismatchCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE drivers SET mismatch_count =
		   (SELECT COUNT(*) FROM audit_log WHERE audit_log.driver_id = drivers.driver_id AND mismatch)
		 WHERE driver_id = ?`, id).Error
}

func (r *driverRepo) CountByStatus(ctx context.Context) (*DriverStatusCounts, error) {
	var c DriverStatusCounts
	err := r.db.WithContext(ctx).Model(&model.Driver{}).
		Select(`COUNT(*) AS total,
		        COUNT(*) FILTER (WHERE status = 'active') AS active,
		        COUNT(*) FILTER (WHERE status = 'suspend') AS suspended`).
		Scan(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

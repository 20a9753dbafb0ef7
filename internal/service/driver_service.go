package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/internal/repository"
)

// ── driver errors ──

var (
	ErrDriverNotFound     = errors.New("Driver tidak ditemukan")
	ErrDriverExists       = errors.New("Driver ID sudah ada")
	ErrInvalidDriverState = errors.New("Status driver tidak valid")
)

// DriverService driver roster
type DriverService interface {
	List(ctx context.Context, req *dto.DriverListRequest) ([]model.Driver, error)
	ListActive(ctx context.Context) ([]model.Driver, error)
	Get(ctx context.Context, id string) (*model.Driver, error)
	Create(ctx context.Context, req *dto.CreateDriverRequest) (*model.Driver, error)
	Update(ctx context.Context, id string, req *dto.UpdateDriverRequest) (*model.Driver, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type driverService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDriverService creates a DriverService
func NewDriverService(repo *repository.Repository, logger *zap.Logger) DriverService {
	return &driverService{repo: repo, logger: logger}
}

func validDriverStatus(s string) bool {
	return s == model.DriverActive || s == model.DriverSuspend || s == model.DriverWarning
}

func (s *driverService) List(ctx context.Context, req *dto.DriverListRequest) ([]model.Driver, error) {
	return s.repo.Driver.List(ctx, repository.DriverFilter{
		Search: req.Search,
		Status: req.StatusFilter,
		Sort:   sortOf(req.SortRequest, "asc"),
	})
}

func (s *driverService) ListActive(ctx context.Context) ([]model.Driver, error) {
	return s.repo.Driver.ListByStatus(ctx, model.DriverActive)
}

func (s *driverService) Get(ctx context.Context, id string) (*model.Driver, error) {
	d, err := s.repo.Driver.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return d, nil
}

// ────────────────────── Create ──────────────────────

func (s *driverService) Create(ctx context.Context, req *dto.CreateDriverRequest) (*model.Driver, error) {
	id := strings.TrimSpace(req.DriverID)

	// 1. duplicate id
	if _, err := s.repo.Driver.GetByID(ctx, id); err == nil {
		return nil, ErrDriverExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. defaults
	category := model.CategoryStandar
	if strings.EqualFold(req.Category, model.CategoryPremium) {
		category = model.CategoryPremium
	}
	status := model.DriverActive
	if req.Status != "" {
		if !validDriverStatus(req.Status) {
			return nil, ErrInvalidDriverState
		}
		status = req.Status
	}

	d := &model.Driver{
		DriverID: id,
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Plate:    strings.TrimSpace(req.Plate),
		Category: category,
		Status:   status,
	}
	if err := s.repo.Driver.Create(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDriverExists
		}
		s.logger.Error("create driver failed", zap.String("driver_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("driver created", zap.String("driver_id", id), zap.String("category", category))
	return d, nil
}

// ────────────────────── Update ──────────────────────

func (s *driverService) Update(ctx context.Context, id string, req *dto.UpdateDriverRequest) (*model.Driver, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		d.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Plate != nil {
		d.Plate = strings.TrimSpace(*req.Plate)
	}
	if req.Category != nil {
		d.Category = model.CategoryStandar
		if strings.EqualFold(*req.Category, model.CategoryPremium) {
			d.Category = model.CategoryPremium
		}
	}
	if req.Status != nil {
		if !validDriverStatus(*req.Status) {
			return nil, ErrInvalidDriverState
		}
		d.Status = *req.Status
	}

	if err := s.repo.Driver.Update(ctx, d); err != nil {
		s.logger.Error("update driver failed", zap.String("driver_id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

// SetStatus backs suspend and activate.
func (s *driverService) SetStatus(ctx context.Context, id, status string) error {
	if !validDriverStatus(status) {
		return ErrInvalidDriverState
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Driver.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("update driver status failed", zap.String("driver_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("driver status changed", zap.String("driver_id", id), zap.String("status", status))
	return nil
}

// Delete removes the driver. Permits and trips keep their denormalised name.
func (s *driverService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Driver.Delete(ctx, id); err != nil {
		s.logger.Error("delete driver failed", zap.String("driver_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("driver deleted", zap.String("driver_id", id))
	return nil
}

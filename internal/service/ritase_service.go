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

var ErrRitaseNotFound = errors.New("Ritase tidak ditemukan")

// RitaseService trip records
type RitaseService interface {
	List(ctx context.Context, req *dto.RitaseListRequest) ([]model.Ritase, error)
	Create(ctx context.Context, sess *dto.Session, req *dto.CreateRitaseRequest) (*model.Ritase, error)
	Update(ctx context.Context, id int64, req *dto.UpdateRitaseRequest) (*model.Ritase, error)
	Delete(ctx context.Context, id int64) error
}

type ritaseService struct {
	repo   *repository.Repository
	cache  *weeklyCache
	clock  Clock
	logger *zap.Logger
}

// NewRitaseService creates a RitaseService
func NewRitaseService(repo *repository.Repository, cache *weeklyCache, clock Clock, logger *zap.Logger) RitaseService {
	return &ritaseService{repo: repo, cache: cache, clock: clock, logger: logger}
}

func (s *ritaseService) List(ctx context.Context, req *dto.RitaseListRequest) ([]model.Ritase, error) {
	return s.repo.Ritase.List(ctx, repository.RitaseFilter{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Search:   req.Search,
		Sort:     sortOf(req.SortRequest, "desc"),
	})
}

// Create records a trip and flags the audit row. A trip on a date without
// an active permit becomes a mismatch.
func (s *ritaseService) Create(ctx context.Context, sess *dto.Session, req *dto.CreateRitaseRequest) (*model.Ritase, error) {
	driver, err := s.repo.Driver.GetByID(ctx, strings.TrimSpace(req.DriverID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	waktu := strings.TrimSpace(req.WaktuRitase)
	if waktu == "" {
		waktu = now.Format("15:04")
	}

	rt := &model.Ritase{
		DriverID:     driver.DriverID,
		DriverName:   driver.Name,
		Date:         req.Date,
		WaktuRitase:  waktu,
		Notes:        req.Notes,
		AdminID:      sess.UserID,
		AdminName:    sess.Name,
		Shift:        DetectShift(now),
		CreatedModel: model.CreatedModel{CreatedAt: now},
	}

	err = s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Ritase.Create(ctx, rt); err != nil {
			return err
		}
		if err := txRepo.Audit.MarkTrip(ctx, rt.Date, rt.DriverID); err != nil {
			return err
		}
		return txRepo.Driver.RefreshMismatchCount(ctx, rt.DriverID)
	})
	if err != nil {
		s.logger.Error("create ritase failed", zap.String("driver_id", rt.DriverID), zap.Error(err))
		return nil, err
	}

	s.cache.evict(ctx, rt.Date)
	s.logger.Info("ritase created",
		zap.Int64("id", rt.ID),
		zap.String("driver_id", rt.DriverID),
		zap.String("date", rt.Date),
	)
	return rt, nil
}

func (s *ritaseService) get(ctx context.Context, id int64) (*model.Ritase, error) {
	rt, err := s.repo.Ritase.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRitaseNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (s *ritaseService) Update(ctx context.Context, id int64, req *dto.UpdateRitaseRequest) (*model.Ritase, error) {
	rt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldDate := rt.Date

	if req.DriverID != nil && *req.DriverID != rt.DriverID {
		d, err := s.repo.Driver.GetByID(ctx, *req.DriverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDriverNotFound
			}
			return nil, err
		}
		rt.DriverID = d.DriverID
		rt.DriverName = d.Name
	}
	if req.Date != nil {
		rt.Date = *req.Date
	}
	if req.WaktuRitase != nil {
		rt.WaktuRitase = strings.TrimSpace(*req.WaktuRitase)
	}
	if req.Notes != nil {
		rt.Notes = *req.Notes
	}

	if err := s.repo.Ritase.Update(ctx, rt); err != nil {
		s.logger.Error("update ritase failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	s.cache.evict(ctx, oldDate, rt.Date)
	return rt, nil
}

func (s *ritaseService) Delete(ctx context.Context, id int64) error {
	rt, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Ritase.Delete(ctx, id); err != nil {
		s.logger.Error("delete ritase failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.cache.evict(ctx, rt.Date)
	s.logger.Info("ritase deleted", zap.Int64("id", id))
	return nil
}

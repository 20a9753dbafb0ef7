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

var (
	ErrInvalidReason = errors.New("Alasan absen tidak valid")
	ErrInvalidRange  = errors.New("Rentang tanggal tidak valid")
)

// AbsenceService per-day absence reasons shown on the weekly report
type AbsenceService interface {
	List(ctx context.Context, req *dto.AbsenceRangeRequest) ([]dto.AbsenceResponse, error)
	// Set stores the reason; an empty reason clears it. Reports whether the
	// record was cleared.
	Set(ctx context.Context, req *dto.AbsenceRequest) (cleared bool, err error)
	Reasons() []string
}

type absenceService struct {
	repo   *repository.Repository
	cache  *weeklyCache
	logger *zap.Logger
}

// NewAbsenceService creates an AbsenceService
func NewAbsenceService(repo *repository.Repository, cache *weeklyCache, logger *zap.Logger) AbsenceService {
	return &absenceService{repo: repo, cache: cache, logger: logger}
}

func (s *absenceService) List(ctx context.Context, req *dto.AbsenceRangeRequest) ([]dto.AbsenceResponse, error) {
	if req.EndDate < req.StartDate {
		return nil, ErrInvalidRange
	}
	rows, err := s.repo.Absence.ListRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AbsenceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AbsenceResponse{DriverID: r.DriverID, Date: r.Date, Reason: r.Reason})
	}
	return out, nil
}

func (s *absenceService) Set(ctx context.Context, req *dto.AbsenceRequest) (bool, error) {
	reason := strings.TrimSpace(req.Reason)

	if reason == "" {
		if err := s.repo.Absence.Delete(ctx, req.DriverID, req.Date); err != nil {
			s.logger.Error("delete absence failed", zap.String("driver_id", req.DriverID), zap.Error(err))
			return false, err
		}
		s.cache.evict(ctx, req.Date)
		return true, nil
	}

	if !model.IsAbsenceReason(reason) {
		return false, ErrInvalidReason
	}
	if _, err := s.repo.Driver.GetByID(ctx, req.DriverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrDriverNotFound
		}
		return false, err
	}

	if err := s.repo.Absence.Upsert(ctx, req.DriverID, req.Date, reason); err != nil {
		s.logger.Error("save absence failed", zap.String("driver_id", req.DriverID), zap.Error(err))
		return false, err
	}
	s.cache.evict(ctx, req.Date)
	s.logger.Info("absence saved",
		zap.String("driver_id", req.DriverID),
		zap.String("date", req.Date),
		zap.String("reason", reason),
	)
	return false, nil
}

func (s *absenceService) Reasons() []string {
	out := make([]string, len(model.AbsenceReasons))
	copy(out, model.AbsenceReasons)
	return out
}


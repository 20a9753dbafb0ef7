package service

import (
	"context"

	"go.uber.org/zap"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/internal/repository"
)

// auditListLimit rows returned by the audit screen
const auditListLimit = 1000

// AuditService permit/trip reconciliation log
type AuditService interface {
	List(ctx context.Context, req *dto.AuditListRequest) ([]model.AuditLog, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService creates an AuditService
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) List(ctx context.Context, req *dto.AuditListRequest) ([]model.AuditLog, error) {
	logs, err := s.repo.Audit.List(ctx, repository.AuditFilter{
		Date:   req.Date,
		Search: req.Search,
		Sort:   sortOf(req.SortRequest, "desc"),
		Limit:  auditListLimit,
	})
	if err != nil {
		s.logger.Error("list audit log failed", zap.Error(err))
		return nil, err
	}
	return logs, nil
}

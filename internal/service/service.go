package service

import (
	"go.uber.org/zap"

	"raja-digital/config"
	"raja-digital/internal/dto"
	"raja-digital/internal/repository"
	"raja-digital/pkg/jwt"
)

// Service aggregate of all services
type Service struct {
	Auth      AuthService
	User      UserService
	Driver    DriverService
	SIJ       SIJService
	Ritase    RitaseService
	Absence   AbsenceService
	Weekly    WeeklyReportService
	Revenue   RevenueService
	Dashboard DashboardService
	Audit     AuditService
	Export    ExportService
}

// Deps optional infrastructure; nil members degrade gracefully.
type Deps struct {
	Cache     ReportCache
	Blacklist TokenBlacklist
}

// NewService wires every service
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	clock := NewClock(cfg.Business.Location())
	wc := newWeeklyCache(deps.Cache, cfg.Business.WeeklyCacheTTL, logger)

	weeklySvc := NewWeeklyReportService(repo, wc, logger)
	revenueSvc := NewRevenueService(repo, clock, logger)

	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, deps.Blacklist, clock, logger),
		User:      NewUserService(repo, logger),
		Driver:    NewDriverService(repo, logger),
		SIJ:       NewSIJService(&cfg.Business, repo, wc, clock, logger),
		Ritase:    NewRitaseService(repo, wc, clock, logger),
		Absence:   NewAbsenceService(repo, wc, logger),
		Weekly:    weeklySvc,
		Revenue:   revenueSvc,
		Dashboard: NewDashboardService(repo, clock, logger),
		Audit:     NewAuditService(repo, logger),
		Export:    NewExportService(repo, weeklySvc, revenueSvc, logger),
	}
}

// sortOf maps list query parameters; an omitted direction uses def.
func sortOf(req dto.SortRequest, def string) repository.Sort {
	dir := req.SortDir
	if dir == "" {
		dir = def
	}
	return repository.Sort{By: req.SortBy, Dir: dir}
}

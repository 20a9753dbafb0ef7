package service

import (
	"context"

	"go.uber.org/zap"

	"raja-digital/internal/dto"
	"raja-digital/internal/repository"
	"raja-digital/internal/weekly"
)

// WeeklyReportService KHD/RTS attendance report per Monday-Sunday window
type WeeklyReportService interface {
	Report(ctx context.Context, req *dto.WeeklyReportRequest) (*dto.WeeklyReportResponse, error)
	// Build assembles the dense per-driver report of w, cached per window.
	Build(ctx context.Context, w weekly.Window) (*dto.WeeklyReport, error)
}

type weeklyReportService struct {
	repo   *repository.Repository
	cache  *weeklyCache
	logger *zap.Logger
}

// NewWeeklyReportService creates a WeeklyReportService
func NewWeeklyReportService(repo *repository.Repository, cache *weeklyCache, logger *zap.Logger) WeeklyReportService {
	return &weeklyReportService{repo: repo, cache: cache, logger: logger}
}

func (s *weeklyReportService) Report(ctx context.Context, req *dto.WeeklyReportRequest) (*dto.WeeklyReportResponse, error) {
	// 1. window: Monday..Sunday
	w, err := weekly.ParseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// 2. dense drivers
	report, err := s.Build(ctx, w)
	if err != nil {
		return nil, err
	}

	// 3. aggregate over everyone, then narrow for display
	summary, err := weekly.Aggregate(w, report.Drivers)
	if err != nil {
		return nil, err
	}

	return &dto.WeeklyReportResponse{
		WeeklyReport: *report,
		Summary:      summary.Search(req.Search),
	}, nil
}

func (s *weeklyReportService) Build(ctx context.Context, w weekly.Window) (*dto.WeeklyReport, error) {
	if r, ok := s.cache.get(ctx, w); ok {
		return r, nil
	}

	from, to := w.StartDate(), w.EndDate()

	drivers, err := s.repo.Driver.ListAll(ctx)
	if err != nil {
		s.logger.Error("weekly: list drivers failed", zap.Error(err))
		return nil, err
	}
	permits, err := s.repo.SIJ.CountActiveByDriverDate(ctx, from, to)
	if err != nil {
		s.logger.Error("weekly: count sij failed", zap.Error(err))
		return nil, err
	}
	trips, err := s.repo.Ritase.CountByDriverDate(ctx, from, to)
	if err != nil {
		s.logger.Error("weekly: count ritase failed", zap.Error(err))
		return nil, err
	}
	absences, err := s.repo.Absence.ListRange(ctx, from, to)
	if err != nil {
		s.logger.Error("weekly: list absences failed", zap.Error(err))
		return nil, err
	}

	roster := make([]weekly.RosterEntry, 0, len(drivers))
	for _, d := range drivers {
		roster = append(roster, weekly.RosterEntry{
			DriverID: d.DriverID,
			Name:     d.Name,
			Plate:    d.Plate,
			Category: d.Category,
		})
	}
	act := weekly.Activity{
		Permits: countIndex(permits),
		Trips:   countIndex(trips),
		Reasons: make(map[weekly.Key]string, len(absences)),
	}
	for _, a := range absences {
		act.Reasons[weekly.Key{DriverID: a.DriverID, Date: a.Date}] = a.Reason
	}

	report := &dto.WeeklyReport{
		StartDate: from,
		EndDate:   to,
		Days:      w.Days(),
		Drivers:   weekly.Assemble(w, roster, act),
	}
	s.cache.put(ctx, w, report)
	return report, nil
}

func countIndex(rows []repository.DayCount) map[weekly.Key]int {
	m := make(map[weekly.Key]int, len(rows))
	for _, r := range rows {
		m[weekly.Key{DriverID: r.DriverID, Date: r.Date}] += r.Count
	}
	return m
}

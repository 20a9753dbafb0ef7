package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/internal/repository"
	"raja-digital/internal/weekly"
)

var ErrNoDashboard = errors.New("Role tidak memiliki dashboard")

// Dashboard variants
const (
	DashboardAdmin      = "admin"
	DashboardSuperAdmin = "superadmin"
)

const (
	adminMismatchLimit      = 50
	superAdminMismatchLimit = 100
	recentSIJLimit          = 20
	rankingLimit            = 10
	trendDays               = 7
)

// DashboardService counter and operations overviews
type DashboardService interface {
	// Resolve picks the variant for the session role and builds it.
	Resolve(ctx context.Context, sess *dto.Session) (*dto.DashboardResponse, error)
	Admin(ctx context.Context, sess *dto.Session) (*dto.AdminDashboard, error)
	SuperAdmin(ctx context.Context) (*dto.SuperAdminDashboard, error)
}

type dashboardService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewDashboardService creates a DashboardService
func NewDashboardService(repo *repository.Repository, clock Clock, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, clock: clock, logger: logger}
}

// DashboardKind variant of a role; empty when the role has none.
func DashboardKind(role string) string {
	switch role {
	case model.RoleSuperAdmin:
		return DashboardSuperAdmin
	case model.RoleAdmin:
		return DashboardAdmin
	}
	return ""
}

func (s *dashboardService) Resolve(ctx context.Context, sess *dto.Session) (*dto.DashboardResponse, error) {
	switch DashboardKind(sess.Role) {
	case DashboardSuperAdmin:
		d, err := s.SuperAdmin(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.DashboardResponse{Kind: DashboardSuperAdmin, SuperAdmin: d}, nil
	case DashboardAdmin:
		d, err := s.Admin(ctx, sess)
		if err != nil {
			return nil, err
		}
		return &dto.DashboardResponse{Kind: DashboardAdmin, Admin: d}, nil
	}
	return nil, ErrNoDashboard
}

// ────────────────────── Admin ──────────────────────

func (s *dashboardService) Admin(ctx context.Context, sess *dto.Session) (*dto.AdminDashboard, error) {
	now := s.clock.Now()
	today := now.Format(weekly.DateLayout)
	shift := sess.Shift
	if shift == "" {
		shift = DetectShift(now)
	}

	totals, err := s.repo.SIJ.Totals(ctx, today, today, shift)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.Driver.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	mismatch, err := s.repo.Driver.ListMismatch(ctx, adminMismatchLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.SIJ.List(ctx, repository.SIJFilter{
		Date:  today,
		Shift: shift,
		Sort:  repository.Sort{By: "created_at", Dir: "desc"},
		Limit: recentSIJLimit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		SIJTodayShift: totals.Count,
		RevenueShift:  totals.Revenue,
		ActiveDrivers: counts.Active,
		Shift:         shift,
		Today:         today,
		MismatchList:  nonNilDrivers(mismatch),
		RecentSIJ:     nonNilSIJ(recent),
	}, nil
}

// ────────────────────── SuperAdmin ──────────────────────

// SuperAdmin runs its independent queries concurrently; the first failure
// cancels the rest.
func (s *dashboardService) SuperAdmin(ctx context.Context) (*dto.SuperAdminDashboard, error) {
	now := s.clock.Now()
	today := now.Format(weekly.DateLayout)
	monthFrom, monthTo := revenueRange(PeriodMonthly, now)
	trendFrom := now.AddDate(0, 0, -(trendDays - 1)).Format(weekly.DateLayout)

	var (
		out                dto.SuperAdminDashboard
		todayTotals, month *repository.SIJTotals
		shift1, shift2     *repository.SIJTotals
		counts             *repository.DriverStatusCounts
		daily              []repository.DailyTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todayTotals, err = s.repo.SIJ.Totals(gctx, today, today, "")
		return err
	})
	g.Go(func() (err error) {
		month, err = s.repo.SIJ.Totals(gctx, monthFrom, monthTo, "")
		return err
	})
	g.Go(func() (err error) {
		shift1, err = s.repo.SIJ.Totals(gctx, today, today, model.Shift1)
		return err
	})
	g.Go(func() (err error) {
		shift2, err = s.repo.SIJ.Totals(gctx, today, today, model.Shift2)
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.repo.Driver.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.repo.Report.DailyTotals(gctx, trendFrom, today)
		return err
	})
	g.Go(func() (err error) {
		out.MismatchList, err = s.repo.Driver.ListMismatch(gctx, superAdminMismatchLimit)
		return err
	})
	g.Go(func() (err error) {
		out.RitaseRanking, err = s.repo.Ritase.Ranking(gctx, monthFrom, monthTo, rankingLimit)
		return err
	})
	g.Go(func() (err error) {
		out.TotalRitaseToday, err = s.repo.Ritase.CountOnDate(gctx, today)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("superadmin dashboard failed", zap.Error(err))
		return nil, err
	}

	out.TotalSIJToday = todayTotals.Count
	out.TotalRevenueToday = todayTotals.Revenue
	out.MonthlySIJ = month.Count
	out.MonthlyRevenue = month.Revenue
	out.TotalDrivers = counts.Total
	out.ActiveDrivers = counts.Active
	out.SuspendedDrivers = counts.Suspended
	out.SIJPerShift = []dto.ShiftSlice{
		{Name: "Shift 1", Value: shift1.Count, Fill: "#f59e0b"},
		{Name: "Shift 2", Value: shift2.Count, Fill: "#0ea5e9"},
	}
	out.DailyTrend = denseTrend(daily, now)
	out.MismatchList = nonNilDrivers(out.MismatchList)
	if out.RitaseRanking == nil {
		out.RitaseRanking = []repository.TripRank{}
	}
	return &out, nil
}

// denseTrend one point per day ending today, oldest first, labelled MM-DD.
func denseTrend(rows []repository.DailyTotal, now time.Time) []repository.DailyTotal {
	byDate := make(map[string]repository.DailyTotal, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}
	out := make([]repository.DailyTotal, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(weekly.DateLayout)
		r := byDate[day]
		out = append(out, repository.DailyTotal{Date: day[5:], Count: r.Count, Revenue: r.Revenue})
	}
	return out
}

func nonNilDrivers(d []model.Driver) []model.Driver {
	if d == nil {
		return []model.Driver{}
	}
	return d
}

func nonNilSIJ(t []model.SIJTransaction) []model.SIJTransaction {
	if t == nil {
		return []model.SIJTransaction{}
	}
	return t
}

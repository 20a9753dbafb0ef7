package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"raja-digital/internal/dto"
	"raja-digital/internal/repository"
	"raja-digital/internal/weekly"
)

var (
	ErrInvalidPeriod = errors.New("Periode harus daily, weekly atau monthly")
	ErrInvalidDate   = errors.New("Format tanggal tidak valid (gunakan YYYY-MM-DD)")
)

// Revenue periods
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// RevenueService revenue per category, grouped by hour or date
type RevenueService interface {
	Report(ctx context.Context, req *dto.RevenueRequest) (*dto.RevenueReport, error)
}

type revenueService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewRevenueService creates a RevenueService
func NewRevenueService(repo *repository.Repository, clock Clock, logger *zap.Logger) RevenueService {
	return &revenueService{repo: repo, clock: clock, logger: logger}
}

// revenueRange resolves the inclusive date range of period around target.
func revenueRange(period string, target time.Time) (from, to string) {
	switch period {
	case PeriodDaily:
		d := target.Format(weekly.DateLayout)
		return d, d
	case PeriodWeekly:
		w := weekly.WeekOf(target)
		return w.StartDate(), w.EndDate()
	default:
		first := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location())
		last := first.AddDate(0, 1, -1)
		return first.Format(weekly.DateLayout), last.Format(weekly.DateLayout)
	}
}

func (s *revenueService) Report(ctx context.Context, req *dto.RevenueRequest) (*dto.RevenueReport, error) {
	period := req.Period
	if period == "" {
		period = PeriodMonthly
	}
	if period != PeriodDaily && period != PeriodWeekly && period != PeriodMonthly {
		return nil, ErrInvalidPeriod
	}

	target := s.clock.Now()
	if req.Date != "" {
		t, err := time.ParseInLocation(weekly.DateLayout, req.Date, s.clock.Location())
		if err != nil {
			return nil, ErrInvalidDate
		}
		target = t
	}

	from, to := revenueRange(period, target)

	var (
		rows []repository.RevenueRow
		err  error
	)
	if period == PeriodDaily {
		rows, err = s.repo.Report.RevenueByHour(ctx, from)
	} else {
		rows, err = s.repo.Report.RevenueByDate(ctx, from, to)
	}
	if err != nil {
		s.logger.Error("revenue query failed", zap.String("period", period), zap.Error(err))
		return nil, err
	}
	if rows == nil {
		rows = []repository.RevenueRow{}
	}

	return &dto.RevenueReport{
		Rows: rows,
		Meta: dto.RevenueMeta{Period: period, DateFrom: from, DateTo: to},
	}, nil
}

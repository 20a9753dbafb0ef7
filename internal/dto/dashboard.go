package dto

import (
	"raja-digital/internal/model"
	"raja-digital/internal/repository"
)

// ── dashboards ──

// AdminDashboard counter view for the caller's shift
type AdminDashboard struct {
	SIJTodayShift int64                  `json:"sij_today_shift"`
	RevenueShift  int64                  `json:"revenue_shift"`
	ActiveDrivers int64                  `json:"active_drivers"`
	Shift         string                 `json:"shift"`
	Today         string                 `json:"today"`
	MismatchList  []model.Driver         `json:"mismatch_list"`
	RecentSIJ     []model.SIJTransaction `json:"recent_sij"`
}

// ShiftSlice one pie slice of the per-shift chart
type ShiftSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Fill  string `json:"fill"`
}

// SuperAdminDashboard operations overview
type SuperAdminDashboard struct {
	TotalSIJToday     int64                   `json:"total_sij_today"`
	TotalRevenueToday int64                   `json:"total_revenue_today"`
	MonthlySIJ        int64                   `json:"monthly_sij"`
	MonthlyRevenue    int64                   `json:"monthly_revenue"`
	TotalDrivers      int64                   `json:"total_drivers"`
	ActiveDrivers     int64                   `json:"active_drivers"`
	SuspendedDrivers  int64                   `json:"suspended_drivers"`
	TotalRitaseToday  int64                   `json:"total_ritase_today"`
	RitaseRanking     []repository.TripRank   `json:"ritase_ranking"`
	SIJPerShift       []ShiftSlice            `json:"sij_per_shift"`
	DailyTrend        []repository.DailyTotal `json:"daily_trend"`
	MismatchList      []model.Driver          `json:"mismatch_list"`
}

// DashboardResponse tagged variant returned by GET /dashboard
type DashboardResponse struct {
	Kind       string               `json:"kind"` // "admin" | "superadmin"
	Admin      *AdminDashboard      `json:"admin,omitempty"`
	SuperAdmin *SuperAdminDashboard `json:"superadmin,omitempty"`
}

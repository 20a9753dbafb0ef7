package dto

import "raja-digital/internal/weekly"

// ── weekly report ──

// WeeklyReportRequest window plus optional search
type WeeklyReportRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date"   binding:"required"`
	Search    string `form:"search"`
}

// WeeklyReport assembled drivers of a window
type WeeklyReport struct {
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Days      []string              `json:"days"`
	Drivers   []weekly.DriverWeekly `json:"drivers"`
}

// WeeklyReportResponse report and its aggregated summary
type WeeklyReportResponse struct {
	WeeklyReport
	Summary *weekly.View `json:"summary"`
}

package dto

// ── absences ──

// AbsenceRequest set or clear ("") a driver's reason for a date
type AbsenceRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
	Date     string `json:"date"      binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason"`
}

// AbsenceRangeRequest required window for listing
type AbsenceRangeRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"required,datetime=2006-01-02"`
}

// AbsenceResponse one stored reason
type AbsenceResponse struct {
	DriverID string `json:"driver_id"`
	Date     string `json:"date"`
	Reason   string `json:"reason"`
}

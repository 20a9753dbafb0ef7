package dto

// ── ritase ──

// CreateRitaseRequest record a trip
type CreateRitaseRequest struct {
	DriverID    string `json:"driver_id"    binding:"required"`
	Date        string `json:"date"         binding:"required,datetime=2006-01-02"`
	WaktuRitase string `json:"waktu_ritase" binding:"omitempty,max=10"`
	Notes       string `json:"notes"`
}

// UpdateRitaseRequest superadmin correction
type UpdateRitaseRequest struct {
	DriverID    *string `json:"driver_id"`
	Date        *string `json:"date"         binding:"omitempty,datetime=2006-01-02"`
	WaktuRitase *string `json:"waktu_ritase" binding:"omitempty,max=10"`
	Notes       *string `json:"notes"`
}

// RitaseListRequest list query
type RitaseListRequest struct {
	Search string `form:"search"`
	DateRangeRequest
	SortRequest
}

package dto

// ── SIJ transactions ──

// CreateSIJRequest issue a permit. Date defaults to today (Jakarta).
type CreateSIJRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
	Sheets   int    `json:"sheets"    binding:"omitempty,min=1,max=100"`
	QRISRef  string `json:"qris_ref"  binding:"required,max=100"`
	Date     string `json:"date"`
}

// UpdateSIJRequest superadmin correction
type UpdateSIJRequest struct {
	DriverID *string `json:"driver_id"`
	Sheets   *int    `json:"sheets"   binding:"omitempty,min=1,max=100"`
	QRISRef  *string `json:"qris_ref" binding:"omitempty,max=100"`
	Date     *string `json:"date"     binding:"omitempty,datetime=2006-01-02"`
	Amount   *int64  `json:"amount"   binding:"omitempty,min=0"`
}

// SIJListRequest list query
type SIJListRequest struct {
	Date        string `form:"date"`
	Shift       string `form:"shift"`
	Search      string `form:"search"`
	IncludeVoid bool   `form:"include_void"`
	DateRangeRequest
	SortRequest
}

// PriceResponse list price preview for the input form
type PriceResponse struct {
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Label    string `json:"label"`
}

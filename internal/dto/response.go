package dto

// ── shared request shapes ──

// SortRequest sort_by / sort_dir query parameters
type SortRequest struct {
	SortBy  string `form:"sort_by"`
	SortDir string `form:"sort_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// DateRangeRequest inclusive YYYY-MM-DD range
type DateRangeRequest struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
}

// MessageResponse acknowledgement with an optional id
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

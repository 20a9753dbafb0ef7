package dto

// ── audit ──

// AuditListRequest list query
type AuditListRequest struct {
	Date   string `form:"date"   binding:"omitempty,datetime=2006-01-02"`
	Search string `form:"search"`
	SortRequest
}

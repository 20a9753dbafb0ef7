package dto

// ── drivers ──

// CreateDriverRequest new driver
type CreateDriverRequest struct {
	DriverID string `json:"driver_id" binding:"required,max=50"`
	Name     string `json:"name"      binding:"required,max=255"`
	Phone    string `json:"phone"     binding:"omitempty,max=50"`
	Plate    string `json:"plate"     binding:"omitempty,max=50"`
	Category string `json:"category"  binding:"omitempty,oneof=standar premium"`
	Status   string `json:"status"    binding:"omitempty,oneof=active suspend warning"`
}

// UpdateDriverRequest partial update
type UpdateDriverRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=255"`
	Phone    *string `json:"phone"    binding:"omitempty,max=50"`
	Plate    *string `json:"plate"    binding:"omitempty,max=50"`
	Category *string `json:"category" binding:"omitempty,oneof=standar premium"`
	Status   *string `json:"status"   binding:"omitempty,oneof=active suspend warning"`
}

// DriverListRequest list query
type DriverListRequest struct {
	Search       string `form:"search"`
	StatusFilter string `form:"status_filter"`
	SortRequest
}

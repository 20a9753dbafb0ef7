package dto

// ── users ──

// CreateUserRequest superadmin creates an operator
type CreateUserRequest struct {
	UserID   string  `json:"user_id"  binding:"required,max=50"`
	Name     string  `json:"name"     binding:"required,max=255"`
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     string  `json:"role"     binding:"required"`
	Shift    *string `json:"shift"`
}

// UpdateUserRequest partial update; nil fields are left unchanged
type UpdateUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=255"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role"`
	Shift    *string `json:"shift"`
}

// UserResponse operator without credentials
type UserResponse struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Shift  *string `json:"shift"`
	Email  string  `json:"email"`
}

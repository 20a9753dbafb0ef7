package dto

import "time"

// ── auth ──

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session authenticated caller, created at login and carried by the token.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Shift  string `json:"shift"`
	Name   string `json:"name"`

	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// IsSuperAdmin reports whether the caller may perform superadmin actions.
func (s *Session) IsSuperAdmin() bool { return s != nil && s.Role == "superadmin" }

// IsAdmin admin or superadmin
func (s *Session) IsAdmin() bool {
	return s != nil && (s.Role == "admin" || s.Role == "superadmin")
}

// LoginResponse token plus the session it encodes
type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresIn int     `json:"expires_in"` // seconds
	User      Session `json:"user"`
}

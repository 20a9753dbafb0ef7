package model

import "time"

// Roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Shifts, detected from the Jakarta wall clock
const (
	Shift1 = "Shift1" // 07:00 - 16:59
	Shift2 = "Shift2"
)

// Driver status
const (
	DriverActive  = "active"
	DriverSuspend = "suspend"
	DriverWarning = "warning"
)

// SIJ status
const (
	SIJActive = "active"
	SIJVoid   = "void"
)

// Categories
const (
	CategoryStandar = "standar"
	CategoryPremium = "premium"
)

// CreatedModel creation timestamp shared by every table
type CreatedModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

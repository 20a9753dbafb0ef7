package model

// AuditLog per driver and date reconciliation of permits against trips - audit_log
type AuditLog struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	Date     string `gorm:"type:varchar(10);not null;uniqueIndex:uq_audit_date_driver" json:"date"`
	DriverID string `gorm:"type:varchar(50);not null;uniqueIndex:uq_audit_date_driver" json:"driver_id"`
	HasSIJ   bool   `gorm:"column:has_sij;not null;default:false"  json:"has_sij"`
	HasTrip  bool   `gorm:"not null;default:false"     json:"has_trip"`
	Mismatch bool   `gorm:"not null;default:false"     json:"mismatch"`
	CreatedModel
}

// TableName table name
func (AuditLog) TableName() string { return "audit_log" }

// ComputeMismatch trips recorded without a permit
func (a *AuditLog) ComputeMismatch() {
	a.Mismatch = a.HasTrip && !a.HasSIJ
}

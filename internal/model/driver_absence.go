package model

// DriverAbsence recorded reason for a driver not working a day - driver_absences
type DriverAbsence struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"  json:"id"`
	DriverID string `gorm:"type:varchar(50);not null;uniqueIndex:uq_absence_driver_date" json:"driver_id"`
	Date     string `gorm:"type:varchar(10);not null;uniqueIndex:uq_absence_driver_date" json:"date"`
	Reason   string `gorm:"type:varchar(50);not null" json:"reason"`
	CreatedModel
}

// TableName table name
func (DriverAbsence) TableName() string { return "driver_absences" }

// AbsenceReasons the fixed set accepted by the weekly report
var AbsenceReasons = []string{
	"SAKIT",
	"IZIN",
	"GANTI UNIT",
	"PINDAH PREMIUM",
	"CUTI",
	"GANGGUAN G.A.",
	"TAKEDOWN",
	"RESIGN",
	"TANPA KETERANGAN",
	"AKUN BLOKIR",
	"UNIT MAINTENANCE",
}

// IsAbsenceReason reports whether r is in AbsenceReasons.
func IsAbsenceReason(r string) bool {
	for _, known := range AbsenceReasons {
		if r == known {
			return true
		}
	}
	return false
}

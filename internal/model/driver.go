package model

// Driver fleet driver - drivers
type Driver struct {
	DriverID      string `gorm:"type:varchar(50);primaryKey"            json:"driver_id"`
	Name          string `gorm:"type:varchar(255);not null"             json:"name"`
	Phone         string `gorm:"type:varchar(50);not null;default:''"   json:"phone"`
	Plate         string `gorm:"type:varchar(50);not null;default:''"   json:"plate"`
	Category      string `gorm:"type:varchar(20);not null;default:'standar'" json:"category"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'"  json:"status"`
	MismatchCount int    `gorm:"not null;default:0"                     json:"mismatch_count"`
	TotalSIJMonth int    `gorm:"column:total_sij_month;not null;default:0" json:"total_sij_month"`
	CreatedModel
}

// TableName table name
func (Driver) TableName() string { return "drivers" }

package model

// Ritase one completed trip - ritase
type Ritase struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	DriverID    string `gorm:"type:varchar(50);not null"  json:"driver_id"`
	DriverName  string `gorm:"type:varchar(255);not null" json:"driver_name"`
	Date        string `gorm:"type:varchar(10);not null"  json:"date"`
	WaktuRitase string `gorm:"type:varchar(10);not null"  json:"waktu_ritase"`
	Notes       string `gorm:"type:text;not null;default:''" json:"notes"`
	AdminID     string `gorm:"type:varchar(50);not null"  json:"admin_id"`
	AdminName   string `gorm:"type:varchar(255);not null" json:"admin_name"`
	Shift       string `gorm:"type:varchar(20);not null"  json:"shift"`
	CreatedModel
}

// TableName table name
func (Ritase) TableName() string { return "ritase" }

package model

// SIJTransaction a paid road permit (Surat Izin Jalan) - sij_transactions
type SIJTransaction struct {
	TransactionID string `gorm:"type:varchar(100);primaryKey" json:"transaction_id"`
	DriverID      string `gorm:"type:varchar(50);not null"    json:"driver_id"`
	DriverName    string `gorm:"type:varchar(255);not null"   json:"driver_name"`
	Category      string `gorm:"type:varchar(20);not null"    json:"category"`
	Date          string `gorm:"type:varchar(10);not null"    json:"date"`
	Time          string `gorm:"type:varchar(10);not null"    json:"time"`
	Sheets        int    `gorm:"not null;default:5"           json:"sheets"`
	Amount        int64  `gorm:"not null"                     json:"amount"`
	QRISRef       string `gorm:"column:qris_ref;type:varchar(100);not null" json:"qris_ref"`
	AdminID       string `gorm:"type:varchar(50);not null"    json:"admin_id"`
	AdminName     string `gorm:"type:varchar(255);not null"   json:"admin_name"`
	Shift         string `gorm:"type:varchar(20);not null"    json:"shift"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedModel

	// joined for receipts, not a column
	Plate string `gorm:"->;-:migration" json:"plate,omitempty"`
}

// TableName table name
func (SIJTransaction) TableName() string { return "sij_transactions" }

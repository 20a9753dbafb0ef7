package model

// User counter operator - users
type User struct {
	UserID       string  `gorm:"type:varchar(50);primaryKey"  json:"user_id"`
	Name         string  `gorm:"type:varchar(255);not null"   json:"name"`
	Role         string  `gorm:"type:varchar(20);not null"    json:"role"`
	Shift        *string `gorm:"type:varchar(20)"             json:"shift"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"   json:"-"`
	CreatedModel
}

// TableName table name
func (User) TableName() string { return "users" }

package model

// AccountModel mirrors the 'accounts' table. One row holds one user record;
// age and the free-form attributes are stored as raw JSON so they round-trip
// exactly as supplied.
type AccountModel struct {
	Email        string  `gorm:"type:varchar(320);primaryKey"`
	Age          *string `gorm:"type:jsonb"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Attributes   *string `gorm:"type:jsonb"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

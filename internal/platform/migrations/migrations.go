package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema of the PostgreSQL document store.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&documentRecord{})
}

// Document schema mirrors the reminders Postgres document store.
type documentRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Value     string    `gorm:"column:value;type:jsonb;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (documentRecord) TableName() string { return "documents" }

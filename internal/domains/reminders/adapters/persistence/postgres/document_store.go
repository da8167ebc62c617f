package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

var _ ports.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps JSON documents in a PostgreSQL key-value table using GORM.
type DocumentStore struct {
	db *gorm.DB
}

// NewDocumentStore wires a PostgreSQL-backed document store. Caller manages DB lifecycle and
// applies the schema with migrations.Run.
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// documentRecord maps one logical key to its JSON document.
type documentRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Value     string    `gorm:"column:value;type:jsonb;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (documentRecord) TableName() string { return "documents" }

// Get returns the stored document or nil when the key is unknown.
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record documentRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(record.Value), nil
}

// Set upserts the document stored under key.
func (s *DocumentStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := documentRecord{Key: key, Value: string(value)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value":      record.Value,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (s *DocumentStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres document store not configured")
	}
	return nil
}

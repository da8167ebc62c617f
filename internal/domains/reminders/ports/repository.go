package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
)

var (
	ErrNotFound = errors.New("reminder not found")
	// ErrStorageUnavailable wraps every failure of the underlying store.
	ErrStorageUnavailable = errors.New("reminder storage unavailable")
)

// Repository gives id-level access to the reminder collection.
type Repository interface {
	List(ctx context.Context) ([]*domain.Reminder, error)
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	// Put inserts or replaces the given reminders in a single write.
	Put(ctx context.Context, reminders ...*domain.Reminder) error
	// Delete reports false when no reminder has the id.
	Delete(ctx context.Context, id string) (bool, error)
}

package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

// DefaultKey is the fixed namespace the reminder collection lives under.
const DefaultKey = "petcare.reminders"

// ErrMalformedCollection reports stored JSON that cannot be decoded into valid reminders.
var ErrMalformedCollection = fmt.Errorf("%w: malformed reminder collection", ports.ErrStorageUnavailable)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps every reminder in one JSON array document. Every call reads the whole
// collection and every mutation writes the whole collection back, so concurrent mutations
// from different callers must be serialized by the caller or the last write wins.
type Repository struct {
	store ports.DocumentStore
	key   string
}

type Option func(*Repository)

// WithKey stores the collection under a different document key.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// NewRepository wires the collection over a document store.
func NewRepository(store ports.DocumentStore, opts ...Option) *Repository {
	r := &Repository{store: store, key: DefaultKey}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// List returns the collection in stored order.
func (r *Repository) List(ctx context.Context) ([]*domain.Reminder, error) {
	return r.load(ctx)
}

// GetByID finds one reminder.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		return all[i], nil
	}
	return nil, ports.ErrNotFound
}

// Put replaces reminders with matching ids in place and appends the rest.
func (r *Repository) Put(ctx context.Context, reminders ...*domain.Reminder) error {
	for _, reminder := range reminders {
		if reminder == nil {
			return errors.New("cannot put nil reminder")
		}
		if err := reminder.Validate(); err != nil {
			return err
		}
	}
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, reminder := range reminders {
		if i := indexOf(all, reminder.ID); i >= 0 {
			all[i] = reminder.Clone()
			continue
		}
		all = append(all, reminder.Clone())
	}
	return r.save(ctx, all)
}

// Delete removes a reminder. An unknown id leaves the stored document untouched.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	all, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return false, nil
	}
	all = append(all[:i], all[i+1:]...)
	if err := r.save(ctx, all); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) load(ctx context.Context) ([]*domain.Reminder, error) {
	if r == nil || r.store == nil {
		return nil, fmt.Errorf("%w: document store not configured", ports.ErrStorageUnavailable)
	}
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	if len(raw) == 0 {
		return []*domain.Reminder{}, nil
	}
	var docs []reminderDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCollection, err)
	}
	reminders := make([]*domain.Reminder, 0, len(docs))
	for i := range docs {
		reminder, err := docs[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformedCollection, i, err)
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

func (r *Repository) save(ctx context.Context, reminders []*domain.Reminder) error {
	docs := make([]reminderDocument, 0, len(reminders))
	for _, reminder := range reminders {
		docs = append(docs, toDocument(reminder))
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	return nil
}

func indexOf(list []*domain.Reminder, id string) int {
	for i, reminder := range list {
		if reminder.ID == id {
			return i
		}
	}
	return -1
}

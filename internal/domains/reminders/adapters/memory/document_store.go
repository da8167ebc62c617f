package memory

import (
	"context"
	"sync"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

var _ ports.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory key-value store used for development and tests.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
	err  error
}

// NewDocumentStore constructs an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: map[string][]byte{}}
}

// FailWith makes every subsequent call return err; nil restores normal operation.
func (s *DocumentStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Get returns a copy of the stored document, or nil when absent.
func (s *DocumentStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	doc, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

// Set replaces the document stored under key.
func (s *DocumentStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.docs[key] = append([]byte(nil), value...)
	return nil
}

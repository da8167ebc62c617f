package ports

import "context"

// DocumentStore is the key-value medium holding whole JSON documents.
type DocumentStore interface {
	// Get returns nil without error when the key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

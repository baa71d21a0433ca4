package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrQuotaExceeded = errors.New("kv: storage quota exceeded")
)

// Store is the durable key-value layer the cache engines persist into.
// Values are opaque strings; callers layer their own serialization on top.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys enumerates every key currently in the store, including keys
	// written by other parts of the application.
	Keys(ctx context.Context) ([]string, error)
}

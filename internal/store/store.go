package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is a typed key-value store with per-key expiry.
type Store[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, val T, expiresIn time.Duration) error
	Save(ctx context.Context, key string, val T) error
	Del(ctx context.Context, key string) error
}

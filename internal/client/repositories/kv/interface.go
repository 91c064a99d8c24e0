package kv

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set upserts key. ttl <= 0 means the value never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetAll upserts every pair atomically with the same ttl.
	SetAll(ctx context.Context, values map[string][]byte, ttl time.Duration) error
	// Delete removes all keys atomically. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

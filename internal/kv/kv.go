// Package kv holds the key-value contract the session store persists into and
// its backends.
package kv

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("kv: key not found")

// Store is a string key-value store. A zero ttl means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Purger is implemented by backends that keep expired rows until swept.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

func expiry(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	at := now.Add(ttl).UTC()
	return &at
}

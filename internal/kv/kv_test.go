package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, "device-1:studentDetail", `{"isLoggedIn":true}`, 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	value, err := store.Get(ctx, "device-1:studentDetail")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if value != `{"isLoggedIn":true}` {
		t.Fatalf("unexpected value %q", value)
	}
	if err := store.Set(ctx, "device-1:studentDetail", "replaced", time.Hour); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	if value, _ := store.Get(ctx, "device-1:studentDetail"); value != "replaced" {
		t.Fatalf("expected overwrite, got %q", value)
	}
	if err := store.Delete(ctx, "device-1:studentDetail"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := store.Get(ctx, "device-1:studentDetail"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted key to be missing, got %v", err)
	}
	if err := store.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("deleting a missing key should not fail: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	_ = store.Set(ctx, "short", "v", time.Minute)
	_ = store.Set(ctx, "forever", "v", 0)
	now = now.Add(2 * time.Minute)

	if _, err := store.Get(ctx, "short"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired key to be missing, got %v", err)
	}
	if _, err := store.Get(ctx, "forever"); err != nil {
		t.Fatalf("expected key without ttl to survive, got %v", err)
	}
}

func TestMemoryPurgeExpired(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()
	_ = store.Set(ctx, "a", "v", time.Minute)
	_ = store.Set(ctx, "b", "v", time.Hour)
	_ = store.Set(ctx, "c", "v", 0)

	purged, err := store.PurgeExpired(ctx, now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("purge error: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged entry, got %d", purged)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestSQLiteExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	if err := store.Set(ctx, "short", "v", time.Minute); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := store.Set(ctx, "forever", "v", 0); err != nil {
		t.Fatalf("set error: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "short"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired key to be hidden, got %v", err)
	}
	purged, err := store.PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("purge error: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged row, got %d", purged)
	}
	if _, err := store.Get(ctx, "forever"); err != nil {
		t.Fatalf("expected key without ttl to survive, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	exerciseStore(t, NewRedis(client, "my-espace-test:"))
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("KV_TEST_DB")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		t.Skip("KV_TEST_DB or DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPostgresPool(ctx, url)
	if err != nil {
		t.Skipf("db unavailable: %v", err)
	}
	defer pool.Close()
	store, err := NewPostgres(ctx, pool)
	if err != nil {
		t.Fatalf("schema error: %v", err)
	}
	exerciseStore(t, store)
}

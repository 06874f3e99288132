package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyCheckAndSetLocksKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if exists || cached != nil {
		t.Fatalf("expected fresh key, got exists=%v cached=%s", exists, cached)
	}

	// Second request sees the placeholder lock.
	exists, cached, err = store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !exists {
		t.Fatal("expected key to exist on second check")
	}
	if string(cached) != "processing" {
		t.Fatalf("expected processing placeholder, got %s", cached)
	}
}

func TestIdempotencyUpdateStoresResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if err := store.Update(ctx, "key-1", []byte(`{"id":"pay-1"}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !exists || string(cached) != `{"id":"pay-1"}` {
		t.Fatalf("expected stored response, got exists=%v cached=%s", exists, cached)
	}
}

func TestIdempotencyCheckAndSetWithResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "key-1", []byte("resp"), time.Minute)
	if err != nil || exists {
		t.Fatalf("expected fresh set, got exists=%v err=%v", exists, err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !exists || string(cached) != "resp" {
		t.Fatalf("expected cached response, got exists=%v cached=%s", exists, cached)
	}
}

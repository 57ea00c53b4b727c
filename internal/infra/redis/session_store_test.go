package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizmatch-service/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", "u1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("auth:session:tok-1") {
		t.Fatalf("expected redis key to be set")
	}

	userID, err := store.Lookup(ctx, "tok-1")
	if err != nil || userID != "u1" {
		t.Fatalf("lookup: got %q err=%v", userID, err)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Lookup(ctx, "tok-1"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after delete, got %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", "u1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Lookup(ctx, "tok-1"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after ttl, got %v", err)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

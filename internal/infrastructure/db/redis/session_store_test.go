package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func testSession(id string, role domain.Role) *domain.Session {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID: id,
		Identity: domain.Identity{
			UserID:      42,
			Role:        role,
			DisplayName: "Rosa",
			Email:       "rosa@example.com",
		},
		CreatedAt: now,
		LastSeen:  now,
	}
}

func TestSessionStore_PutGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	want := testSession("abc", domain.RoleCustomer)
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != want.ID || got.Identity != want.Identity {
		t.Fatalf("session changed across round trip: %+v", got)
	}
	if !got.LastSeen.Equal(want.LastSeen) {
		t.Fatalf("last seen changed: %v vs %v", got.LastSeen, want.LastSeen)
	}
}

func TestSessionStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_GetCorruptRecord(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := mr.Set("session:bad", "{not json"); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	// A corrupt record reads as no session and the key is dropped.
	if _, err := store.Get(ctx, "bad"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if mr.Exists("session:bad") {
		t.Fatalf("corrupt record must be deleted")
	}
}

func TestSessionStore_DeleteAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("deleting an absent session must be a no-op: %v", err)
	}
}

func TestSessionStore_All(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		if err := store.Put(ctx, testSession(id, domain.RoleCustomer)); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	// Unrelated keys are ignored.
	if err := mr.Set("recovery:x@example.com", "123456"); err != nil {
		t.Fatalf("seed unrelated key: %v", err)
	}

	sessions, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
}

func TestSessionStore_TransportErrorIsUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewSessionStore(client)
	mr.Close()

	if _, err := store.Get(context.Background(), "abc"); !errors.Is(err, domain.ErrSessionUnavailable) {
		t.Fatalf("expected ErrSessionUnavailable, got %v", err)
	}
	if err := store.Put(context.Background(), testSession("abc", domain.RoleCustomer)); !errors.Is(err, domain.ErrSessionUnavailable) {
		t.Fatalf("expected ErrSessionUnavailable on put, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "abc", 7, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if id, err := s.Get(ctx, "abc"); err != nil || id != 7 {
		t.Fatalf("Get = %d, %v", id, err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := s.Get(ctx, "abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session: err = %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "abc", 7, 0)
	if err := s.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("deleted session: err = %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("deleting an unknown id should be a no-op, got %v", err)
	}
}

package memory

import (
	"context"
	"sync"
	"testing"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, ok, err := s.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v2" {
		t.Fatalf("expected v2, got %q ok=%v", v, ok)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove of absent key should succeed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("key still present after remove")
	}
}

func TestStore_EmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.Set(ctx, "k", "")

	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "" {
		t.Fatalf("expected present empty value, got %q ok=%v", v, ok)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "k", "v")
			_, _, _ = s.Get(ctx, "k")
		}()
	}
	wg.Wait()
}

func TestIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore()

	if _, ok, _ := s.Lookup(ctx, "abc"); ok {
		t.Fatalf("unexpected hit on empty store")
	}
	_ = s.Remember(ctx, "abc", "1741944413589")
	if id, ok, _ := s.Lookup(ctx, "abc"); !ok || id != "1741944413589" {
		t.Fatalf("expected remembered id, got %q ok=%v", id, ok)
	}
}

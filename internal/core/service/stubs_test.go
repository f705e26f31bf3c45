package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var discardLogger = zerolog.Nop()

var errStoreDown = errors.New("store unavailable")

// stubStore is an in-memory ports.Store that counts writes and can be told
// to fail.
type stubStore struct {
	data       map[string]string
	writes     int
	failSet    bool
	failGet    bool
	failRemove bool
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errStoreDown
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	if s.failSet {
		return errStoreDown
	}
	s.writes++
	s.data[key] = value
	return nil
}

func (s *stubStore) Remove(_ context.Context, key string) error {
	if s.failRemove {
		return errStoreDown
	}
	s.writes++
	delete(s.data, key)
	return nil
}

// stubIdempotency is an in-memory ports.IdempotencyStore. delay slows
// Lookup down to widen race windows.
type stubIdempotency struct {
	mu    sync.Mutex
	keys  map[string]string
	delay time.Duration
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (string, bool, error) {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = postID
	return nil
}

// fixedClock returns a Clock frozen at t; Next still yields unique values.
func fixedClock(t time.Time) *Clock {
	return NewClock(func() time.Time { return t })
}

var epoch = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

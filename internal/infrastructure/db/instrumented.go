// Package db selects and wraps the key-value store backends.
package db

import (
	"context"
	"time"

	"github.com/inkwell/blog-system/internal/core/ports"
	"github.com/inkwell/blog-system/internal/pkg/metrics"
)

// Backend is a ports.Store that can also report its health.
type Backend interface {
	ports.Store
	ports.Pinger
}

// Instrumented records latency and failures of every store call.
type Instrumented struct {
	next    Backend
	backend string
}

func Instrument(backend string, next Backend) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (s *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return v, ok, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", start, err)
	return err
}

func (s *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.observe("remove", start, err)
	return err
}

func (s *Instrumented) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	metrics.StoreOperationDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(s.backend, op).Inc()
	}
}

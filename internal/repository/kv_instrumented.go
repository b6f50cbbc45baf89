package repository

import (
	"context"
	"time"
)

// StoreObserver receives the latency of each key-value store call. op is
// "get" or "set"; err is the call's result.
type StoreObserver func(op string, err error, duration time.Duration)

// InstrumentedKV wraps a KVStore and reports per-call latency to an
// observer. A nil observer makes it a transparent pass-through.
type InstrumentedKV struct {
	next    KVStore
	observe StoreObserver
}

// NewInstrumentedKV constructs the wrapper.
func NewInstrumentedKV(next KVStore, observe StoreObserver) *InstrumentedKV {
	return &InstrumentedKV{next: next, observe: observe}
}

// Get delegates to the wrapped store and records the call latency.
func (s *InstrumentedKV) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	if s.observe != nil {
		s.observe("get", err, time.Since(start))
	}
	return value, found, err
}

// Set delegates to the wrapped store and records the call latency.
func (s *InstrumentedKV) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	if s.observe != nil {
		s.observe("set", err, time.Since(start))
	}
	return err
}

// Package store provides the in-memory keyed storage for keeva.
//
// Entries carry an optional deadline and are evicted lazily: every
// access path checks the deadline for the touched key before the caller
// observes the slot, so an expired entry is indistinguishable from an
// absent one. There is no background sweeper; keys that expire and are
// never accessed again stay resident.
package store

import (
	"sync"
	"time"
)

// Value is the payload stored at a key: either a String or a List.
type Value interface {
	isValue()
}

// String is a plain text payload, written by SET.
type String string

// List is an ordered text payload, grown in place by RPUSH.
type List []string

func (String) isValue() {}
func (List) isValue()   {}

// Entry is one stored record. A zero ExpiresAt means the entry never
// expires. ExpiresAt values originate from the store's own clock, so
// deadline comparisons ride Go's monotonic clock reading and are immune
// to wall-clock adjustments.
type Entry struct {
	Value     Value
	ExpiresAt time.Time
}

func (e Entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !e.ExpiresAt.After(now)
}

// Store owns a map from key to Entry behind a single exclusive lock.
// Reads take the same lock as writes because lazy eviction can mutate
// the map on any access.
type Store struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithClock replaces the time source, for deterministic expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]Entry),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Now reads the store's clock. Command handlers compute entry deadlines
// against this so injected test clocks govern both writes and evictions.
func (s *Store) Now() time.Time {
	return s.now()
}

// evictExpired removes the entry at key if its deadline has passed.
// Caller must hold the lock.
func (s *Store) evictExpired(key string, now time.Time) {
	if e, ok := s.entries[key]; ok && e.expired(now) {
		delete(s.entries, key)
	}
}

// Lookup returns the live entry at key. An expired entry is evicted as
// a side effect and reported as absent.
func (s *Store) Lookup(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(key, s.now())
	e, ok := s.entries[key]
	return e, ok
}

// Upsert unconditionally installs entry at key and returns the previous
// live entry, if any. An expired previous entry is evicted first and
// not reported.
func (s *Store) Upsert(key string, entry Entry) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(key, s.now())
	prev, existed := s.entries[key]
	s.entries[key] = entry
	return prev, existed
}

// Slot gives fn exclusive access to the slot at key. fn receives nil
// when the slot is vacant (or held an expired entry, which is evicted
// first). The entry fn returns replaces the slot's contents; returning
// nil leaves the slot vacant. RPUSH uses this to initialize or grow a
// list under one lock acquisition.
func (s *Store) Slot(key string, fn func(e *Entry) *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(key, s.now())

	var arg *Entry
	if e, ok := s.entries[key]; ok {
		arg = &e
	}

	repl := fn(arg)
	if repl == nil {
		delete(s.entries, key)
		return
	}
	s.entries[key] = *repl
}

// Len counts resident entries, including expired ones that have not
// been evicted yet. Feeds the stored-keys metric.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

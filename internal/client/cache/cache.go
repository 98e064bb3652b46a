// Package cache holds the client's transient, in-memory query results.
//
// Entries are keyed by hierarchical logical keys (resource class, resource
// id, sub-resource) and carry a per-entry TTL plus an explicit stale flag.
// Invalidation marks entries stale so the next read re-fetches; it never
// re-fetches synchronously. Nothing here is persisted: the cache is rebuilt
// from the backend on demand.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Key is a hierarchical cache key, e.g. Key{"chat", "messages", matchID}.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k starts with the given prefix segments.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}
	return true
}

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
	ttl       time.Duration
	stale     bool
}

func (e *entry) fresh(now time.Time) bool {
	if e.stale {
		return false
	}
	return now.Sub(e.fetchedAt) < e.ttl
}

// Store is the in-memory query cache. Safe for use from multiple goroutines
// (the REPL and pollers share it).
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func New() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key and whether it is present and fresh.
// A stale or expired entry is still returned (last-known-good) with ok=false
// so callers can choose to show it while re-fetching.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, present := s.entries[key.String()]
	if !present {
		return nil, false
	}
	return e.value, e.fresh(s.now())
}

// Set stores value under key with the given TTL, clearing any stale mark.
func (s *Store) Set(key Key, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.String()] = &entry{
		key:       key,
		value:     value,
		fetchedAt: s.now(),
		ttl:       ttl,
		stale:     false,
	}
}

// Update applies fn to the current value under key, if present, and keeps the
// entry's freshness metadata intact. Used for optimistic mutations: the entry
// keeps its original fetch time so the regular staleness rules still apply.
func (s *Store) Update(key Key, fn func(old any) any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, present := s.entries[key.String()]
	if !present {
		return false
	}
	e.value = fn(e.value)
	return true
}

// Invalidate marks every entry under the given key prefix as stale. The next
// GetOrFetch for those keys will hit the backend.
func (s *Store) Invalidate(prefix Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
		}
	}
}

// IsStale reports whether key is present and marked stale or expired.
func (s *Store) IsStale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, present := s.entries[key.String()]
	if !present {
		return false
	}
	return !e.fresh(s.now())
}

// Clear drops every entry. Used on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// GetOrFetch returns the cached value for key when fresh; otherwise it calls
// fetch, stores the result under key with the given TTL, and returns it. On
// fetch failure the previous value (if any) stays in place so the UI can keep
// showing last-known-good data alongside the error.
func GetOrFetch[T any](ctx context.Context, s *Store, key Key, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, isT := v.(T); isT {
			return typed, nil
		}
	}

	fetched, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.Set(key, fetched, ttl)
	return fetched, nil
}

// Cached returns the value under key regardless of freshness, typed. The
// second result reports presence, not freshness.
func Cached[T any](s *Store, key Key) (T, bool) {
	s.mu.Lock()
	e, present := s.entries[key.String()]
	s.mu.Unlock()
	if !present {
		var zero T
		return zero, false
	}
	typed, ok := e.value.(T)
	return typed, ok
}

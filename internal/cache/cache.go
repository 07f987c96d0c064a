// Package cache implements the small time-to-stale query cache the consoles
// put in front of read-side API calls. Mutations invalidate the affected
// keys; concurrent refreshes simply overwrite the same entry, last write
// wins.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Query caches fetch results by key until they go stale.
type Query struct {
	mu        sync.Mutex
	staleTime time.Duration
	entries   map[string]entry
	now       func() time.Time
}

func New(staleTime time.Duration) *Query {
	return &Query{
		staleTime: staleTime,
		entries:   make(map[string]entry),
		now:       time.Now,
	}
}

// GetOr returns the cached value for key if it is still fresh, otherwise
// calls fetch and caches the result. A failed fetch caches nothing, so the
// next call retries.
func (q *Query) GetOr(key string, fetch func() (any, error)) (any, error) {
	q.mu.Lock()
	if e, ok := q.entries[key]; ok && q.now().Sub(e.fetchedAt) < q.staleTime {
		q.mu.Unlock()
		return e.value, nil
	}
	q.mu.Unlock()

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	q.entries[key] = entry{value: value, fetchedAt: q.now()}
	q.mu.Unlock()
	return value, nil
}

// Put stores a value directly, overwriting any cached entry. Used by the
// background watcher, whose refreshes race harmlessly with user-initiated
// ones.
func (q *Query) Put(key string, value any) {
	q.mu.Lock()
	q.entries[key] = entry{value: value, fetchedAt: q.now()}
	q.mu.Unlock()
}

// Peek returns the cached value for key if present and fresh, without
// fetching. Callers that only want "the last known value" use this.
func (q *Query) Peek(key string) (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok || q.now().Sub(e.fetchedAt) >= q.staleTime {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops the given keys so the next read refetches.
func (q *Query) Invalidate(keys ...string) {
	q.mu.Lock()
	for _, key := range keys {
		delete(q.entries, key)
	}
	q.mu.Unlock()
}

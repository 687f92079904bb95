package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"doorsteps/internal/pkg/metrics"
)

// DefaultTTL is the staleness window applied by stores that do not
// override it. Within the window a non-empty collection answers reads
// without touching the network.
const DefaultTTL = 5 * time.Minute

// FetchFunc loads the authoritative collection from the backend.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection holds one domain type's cached entities, keyed by cache
// key (a view such as "customer"/"professional", or a single default
// key). The in-memory data is a cache, never authoritative; a
// successful fetch replaces the collection wholesale.
type Collection[T any] struct {
	name string
	ttl  time.Duration
	id   func(T) int64
	now  func() time.Time
	log  *zap.Logger

	mu       sync.Mutex
	entries  map[string]*entry[T]
	inflight map[string]*inflightCall[T]
}

type entry[T any] struct {
	items       []T
	lastFetched time.Time
	lastErr     string
}

// inflightCall is a pending upstream request shared by every caller
// that asked for the same key while it was running.
type inflightCall[T any] struct {
	done  chan struct{}
	items []T
	err   error
}

type Option[T any] func(*Collection[T])

// WithTTL overrides the staleness window.
func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(c *Collection[T]) { c.ttl = ttl }
}

// WithClock injects a time source for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Collection[T]) { c.now = now }
}

func New[T any](name string, id func(T) int64, log *zap.Logger, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		name:     name,
		ttl:      DefaultTTL,
		id:       id,
		now:      time.Now,
		log:      log,
		entries:  map[string]*entry[T]{},
		inflight: map[string]*inflightCall[T]{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection[T]) entryLocked(key string) *entry[T] {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	return e
}

// Fetch returns the collection for key. Within the TTL a non-empty
// collection is returned as-is and fn is not called. Concurrent
// fetches for the same key coalesce onto a single upstream request.
// On failure the prior data stays in place and is returned alongside
// the error (stale-but-available).
func (c *Collection[T]) Fetch(ctx context.Context, key string, force bool, fn FetchFunc[T]) ([]T, error) {
	c.mu.Lock()
	e := c.entryLocked(key)

	if !force && len(e.items) > 0 && c.now().Sub(e.lastFetched) < c.ttl {
		items := cloneSlice(e.items)
		c.mu.Unlock()
		metrics.CacheHitsTotal.WithLabelValues(c.name).Inc()
		return items, nil
	}

	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		metrics.FetchDedupTotal.WithLabelValues(c.name).Inc()
		select {
		case <-call.done:
			return cloneSlice(call.items), call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &inflightCall[T]{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	metrics.CacheMissesTotal.WithLabelValues(c.name).Inc()
	items, err := fn(ctx)

	c.mu.Lock()
	delete(c.inflight, key)
	e = c.entryLocked(key)
	if err != nil {
		e.lastErr = err.Error()
		call.items = cloneSlice(e.items)
		call.err = err
		metrics.FetchFailuresTotal.WithLabelValues(c.name).Inc()
		c.log.Warn("fetch failed, keeping stale data",
			zap.String("store", c.name),
			zap.String("key", key),
			zap.Error(err))
	} else {
		e.items = cloneSlice(items)
		e.lastFetched = c.now()
		e.lastErr = ""
		call.items = cloneSlice(items)
	}
	c.mu.Unlock()

	close(call.done)
	return cloneSlice(call.items), call.err
}

// Items returns a copy of the current collection for key.
func (c *Collection[T]) Items(key string) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSlice(c.entryLocked(key).items)
}

func (c *Collection[T]) Find(key string, id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.entryLocked(key).items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Filter(key string, pred func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []T
	for _, it := range c.entryLocked(key).items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T]) Count(key string, pred func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.entryLocked(key).items {
		if pred(it) {
			n++
		}
	}
	return n
}

// Upsert splices item into the collection by id match, appending when
// absent. Used for post-confirmation reconciliation of API responses.
func (c *Collection[T]) Upsert(key string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key)
	for i, it := range e.items {
		if c.id(it) == c.id(item) {
			e.items[i] = item
			return
		}
	}
	e.items = append(e.items, item)
}

// Remove filters id out of the collection. Removing an absent id is a
// no-op.
func (c *Collection[T]) Remove(key string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key)
	out := e.items[:0]
	for _, it := range e.items {
		if c.id(it) != id {
			out = append(out, it)
		}
	}
	e.items = out
}

// Seed loads items without stamping freshness: restored snapshots are
// usable immediately but the next fetch still goes to the network.
func (c *Collection[T]) Seed(key string, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key)
	e.items = cloneSlice(items)
	e.lastFetched = time.Time{}
}

// Invalidate drops the collection and its freshness stamp so the next
// fetch goes to the network.
func (c *Collection[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears every key, used on logout.
func (c *Collection[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*entry[T]{}
}

// LastError is the human-readable message of the most recent failed
// fetch, empty after a success. Rendered as a retry prompt.
func (c *Collection[T]) LastError(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryLocked(key).lastErr
}

func (c *Collection[T]) LastFetched(key string) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryLocked(key).lastFetched
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

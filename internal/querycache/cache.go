// Package querycache is the process-wide read cache sitting between the
// pages and the API client. Each distinct (operation, parameters) key
// performs at most one underlying request at a time; results are cached
// until a mutation invalidates them, and subscribers are notified on every
// resolution.
package querycache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/catalogops/console/internal/apierr"
)

// FetchFunc performs the underlying request for a cache key.
type FetchFunc func(ctx context.Context) (any, error)

// Result is what subscribers receive when a key resolves.
type Result struct {
	Data any
	Err  error
}

// SubscribeFunc receives results for a subscribed key.
type SubscribeFunc func(Result)

// RetryPolicy bounds automatic retries of retryable read failures.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries uint64
	// InitialDelay is the first backoff interval; it doubles per attempt.
	InitialDelay time.Duration
	// MaxDelay caps the interval between attempts.
	MaxDelay time.Duration
}

// DefaultRetryPolicy retries twice with 1s/2s delays, capped at 30s.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:   2,
	InitialDelay: time.Second,
	MaxDelay:     30 * time.Second,
}

// Option configures a Cache.
type Option func(*Cache)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Cache) { c.retry = p }
}

// WithRetryClassifier overrides the predicate deciding whether a read
// failure is retried.
func WithRetryClassifier(fn func(error) bool) Option {
	return func(c *Cache) { c.retryable = fn }
}

type entry struct {
	data    any
	err     error
	loaded  bool
	stale   bool
	gen     uint64
	fetch   FetchFunc
	subs    map[uint64]SubscribeFunc
	nextSub uint64
}

// Cache is the shared query cache. All methods are safe for concurrent
// use; cached entries are only ever mutated through Get and Invalidate.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	logger  *slog.Logger

	retry     RetryPolicy
	retryable func(error) bool
}

// New creates an empty cache. Retryability defaults to the error layer's
// classification (network failures and 5xx).
func New(logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[string]*entry),
		logger:    logger.With(slog.String("component", "querycache")),
		retry:     DefaultRetryPolicy,
		retryable: apierr.IsRetryable,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached value for key, fetching it when the entry is
// missing or stale. Concurrent callers of the same key share a single
// underlying request. Failed resolutions are not cached; the next Get
// fetches again.
func (c *Cache) Get(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.ensureEntry(key)
	e.fetch = fetch
	if e.loaded && !e.stale && e.err == nil {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	gen := e.gen
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := c.fetchWithRetry(ctx, key, fetch)
		c.commit(key, gen, data, err)
		return data, err
	})

	return v, err
}

// Subscribe registers fn to receive every future resolution of key. The
// returned cancel function removes the subscription; fn is never invoked
// after cancel returns.
func (c *Cache) Subscribe(key string, fn SubscribeFunc) (cancel func()) {
	c.mu.Lock()
	e := c.ensureEntry(key)
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok {
			delete(e.subs, id)
		}
	}
}

// Invalidate marks every entry whose key starts with prefix as stale.
// Entries with active subscribers refetch immediately; the rest refetch on
// next access. Data for non-matching keys is untouched.
func (c *Cache) Invalidate(prefix string) {
	type refetch struct {
		key   string
		fetch FetchFunc
	}
	var refetches []refetch

	c.mu.Lock()
	for key, e := range c.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		e.stale = true
		e.gen++
		if len(e.subs) > 0 && e.fetch != nil {
			refetches = append(refetches, refetch{key: key, fetch: e.fetch})
		}
	}
	c.mu.Unlock()

	for _, r := range refetches {
		go func() {
			if _, err := c.Get(context.Background(), r.key, r.fetch); err != nil {
				c.logger.Warn("refetch after invalidation failed",
					slog.String("key", r.key),
					slog.Any("error", err))
			}
		}()
	}
}

// ensureEntry returns the entry for key, creating it if needed. Callers
// must hold c.mu.
func (c *Cache) ensureEntry(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{subs: make(map[uint64]SubscribeFunc)}
		c.entries[key] = e
	}
	return e
}

// commit stores a resolution and fans it out to subscribers. A resolution
// started before an invalidation still commits, but stays stale so the
// next access refetches.
func (c *Cache) commit(key string, gen uint64, data any, err error) {
	c.mu.Lock()
	e := c.ensureEntry(key)
	e.data = data
	e.err = err
	e.loaded = err == nil
	e.stale = e.gen != gen
	subs := make([]SubscribeFunc, 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(Result{Data: data, Err: err})
	}
}

// fetchWithRetry runs one fetch, retrying only failures the classifier
// accepts, with exponential backoff. Mutations never go through here.
func (c *Cache) fetchWithRetry(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retry.InitialDelay
	bo.MaxInterval = c.retry.MaxDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0

	attempt := 0
	op := func() (any, error) {
		attempt++
		data, err := fetch(ctx)
		if err != nil {
			if !c.retryable(err) {
				return nil, backoff.Permanent(err)
			}
			c.logger.WarnContext(ctx, "retryable query failure",
				slog.String("key", key),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
		}
		return data, err
	}

	return backoff.RetryWithData(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.retry.MaxRetries), ctx))
}

// GetTyped is a typed wrapper over Cache.Get for callers that know the
// value type stored under key.
func GetTyped[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

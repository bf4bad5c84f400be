// Package query caches the results of deferred loads, such as overview
// documents, for the lifetime of an explicit Client.
package query

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Defaults for a new Client.
const (
	DefaultStaleTime = 5 * time.Minute
	DefaultRetry     = 1
)

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (value any, err error)

// Options configures a Client.
type Options struct {
	StaleTime time.Duration
	// Retry is the number of extra attempts after a failure. Zero means
	// DefaultRetry; a negative value disables retries.
	Retry     int
	Logger    *zap.Logger
	Now       func() time.Time
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Client is a keyed cache with stale-time expiry, retries and
// de-duplication of concurrent fetches. The zero value is not usable; call New.
type Client struct {
	staleTime time.Duration
	retry     int
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

// New creates a client. Zero options take the defaults.
func New(opts Options) (client *Client) {
	client = &Client{
		staleTime: opts.StaleTime,
		retry:     opts.Retry,
		logger:    opts.Logger,
		now:       opts.Now,
		entries:   make(map[string]entry),
	}

	if client.staleTime <= 0 {
		client.staleTime = DefaultStaleTime
	}
	if client.retry < 0 {
		client.retry = 0
	}
	if opts.Retry == 0 {
		client.retry = DefaultRetry
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}
	if client.now == nil {
		client.now = time.Now
	}

	return client
}

// Fetch returns the cached value for key, or calls fn. A failing fn is
// retried; the last error is returned as is and nothing is cached.
func (c *Client) Fetch(ctx context.Context, key string, fn FetchFunc) (value any, err error) {
	if cached, ok := c.lookup(key); ok {
		value = cached
		return value, err
	}

	value, err, _ = c.group.Do(key, func() (result any, fetchErr error) {
		result, fetchErr = c.fetchWithRetry(ctx, key, fn)
		if fetchErr != nil {
			return result, fetchErr
		}

		c.mu.Lock()
		c.entries[key] = entry{value: result, fetchedAt: c.now()}
		c.mu.Unlock()

		return result, fetchErr
	})

	return value, err
}

func (c *Client) fetchWithRetry(ctx context.Context, key string, fn FetchFunc) (value any, err error) {
	for attempt := 0; attempt <= c.retry; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				err = ctxErr
			}
			return value, err
		}

		value, err = fn(ctx)
		if err == nil {
			return value, err
		}

		c.logger.Debug("query fetch failed",
			zap.String("key", key),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return value, err
}

func (c *Client) lookup(key string) (value any, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found {
		return value, ok
	}

	if c.now().Sub(e.fetchedAt) >= c.staleTime {
		delete(c.entries, key)
		return value, ok
	}

	value = e.value
	ok = true
	return value, ok
}

// Invalidate drops a single key.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Reset drops every cached value.
func (c *Client) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached values, stale ones included.
func (c *Client) Len() (n int) {
	c.mu.Lock()
	n = len(c.entries)
	c.mu.Unlock()
	return n
}

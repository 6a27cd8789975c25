package source

import (
	"context"
	"sync"
	"time"

	"github.com/rmclanahan/nasea-leaderboard/pkg/metrics"
)

const defaultCacheTTL = 10 * time.Second

// cachedProvider serves the last fetched table while it is younger than the
// TTL, bounding fetch frequency when ticks arrive in bursts. Errors are
// never cached; a failed fetch leaves the cache empty so the next tick
// retries.
type cachedProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	table     Table
	fetchedAt time.Time
}

// NewCached wraps the given provider with a TTL cache. A non-positive ttl
// falls back to the default. now is overridable for tests; pass nil for
// time.Now.
func NewCached(inner Provider, ttl time.Duration, now func() time.Time) Provider {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &cachedProvider{inner: inner, ttl: ttl, now: now}
}

func (c *cachedProvider) Fetch(ctx context.Context) (Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		metrics.RecordCacheHit()
		return c.table, nil
	}

	metrics.RecordCacheMiss()
	table, err := c.inner.Fetch(ctx)
	if err != nil {
		return Table{}, err
	}
	c.table = table
	c.fetchedAt = c.now()
	return table, nil
}

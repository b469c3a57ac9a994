// Package cache implements the bounded, TTL-expiring cache the
// recommendation core layers over external catalog calls.
package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock abstracts wall-clock time so tests can inject a synthetic clock
// instead of depending on real elapsed time, per the design notes.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type entry struct {
	value     any
	expiresAt time.Time
}

// Stats reports cumulative cache effectiveness.
type Stats struct {
	Hits    int64
	Misses  int64
	Size    int
	HitRate float64
}

// TTLCache is a bounded mapping from string key to value, with per-entry
// absolute expiry, ~10%-of-size eviction on overflow, and single-flight
// collapsing of concurrent misses for the same key.
type TTLCache struct {
	clock   Clock
	maxSize int

	mu      sync.Mutex
	entries map[string]entry
	hits    int64
	misses  int64

	group singleflight.Group

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// New builds a TTLCache bounded to maxSize entries. If sweepInterval > 0 a
// background goroutine periodically evicts expired entries; otherwise
// expiry is enforced lazily on read, which the design notes say is
// sufficient when no sweeper is configured.
func New(maxSize int, sweepInterval time.Duration, clock Clock) *TTLCache {
	if clock == nil {
		clock = SystemClock{}
	}
	if maxSize <= 0 {
		maxSize = 10000
	}
	c := &TTLCache{
		clock:   clock,
		maxSize: maxSize,
		entries: make(map[string]entry),
	}
	if sweepInterval > 0 {
		c.stopSweep = make(chan struct{})
		go c.sweepLoop(sweepInterval)
	}
	return c
}

// Close stops the background sweeper, if one is running. Safe to call more
// than once and safe on a cache with no sweeper.
func (c *TTLCache) Close() {
	c.sweepOnce.Do(func() {
		if c.stopSweep != nil {
			close(c.stopSweep)
		}
	})
}

func (c *TTLCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopSweep:
			return
		}
	}
}

func (c *TTLCache) sweep() {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Get returns the value stored under key, or false if absent or expired.
// An expired entry found on a miss is lazily dropped.
func (c *TTLCache) Get(key string) (any, bool) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if !now.Before(e.expiresAt) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set stores value under key with the given ttl, evicting the oldest-to-expire
// ~10% of entries first if the insertion would exceed maxSize.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value, ttl, now)
}

func (c *TTLCache) setLocked(key string, value any, ttl time.Duration, now time.Time) {
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
}

// evictLocked removes roughly 10% of entries, earliest expiresAt first.
// Caller must hold c.mu.
func (c *TTLCache) evictLocked() {
	n := len(c.entries) / 10
	if n < 1 {
		n = 1
	}
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.entries[keys[i]].expiresAt.Before(c.entries[keys[j]].expiresAt)
	})
	for i := 0; i < n && i < len(keys); i++ {
		delete(c.entries, keys[i])
	}
}

// Producer computes the value to cache on a miss.
type Producer func(ctx context.Context) (any, error)

// GetOrCompute returns the cached value for key, or invokes producer on a
// miss and caches the result for ttl. Concurrent callers for the same key
// observe exactly one producer invocation (single-flight): all of them
// receive the first producer's result or error.
func (c *TTLCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, producer Producer) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under single-flight in case another goroutine populated
		// the cache between our Get above and acquiring the flight gate.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		result, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, result, ttl)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Stats reports cumulative hit/miss counts, current size, and hit rate.
func (c *TTLCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	var rate float64
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    len(c.entries),
		HitRate: rate,
	}
}

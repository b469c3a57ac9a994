package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(100, 0, newFakeClock())
	c.Set("k", "v", time.Minute)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestGetExpiresLazily(t *testing.T) {
	clock := newFakeClock()
	c := New(100, 0, clock)
	c.Set("k", "v", time.Second)

	clock.Advance(2 * time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestEvictsTenPercentOnOverflow(t *testing.T) {
	clock := newFakeClock()
	c := New(10, 0, clock)
	for i := 0; i < 10; i++ {
		c.Set(string(rune('a'+i)), i, time.Hour)
		clock.Advance(time.Millisecond)
	}
	assert.Equal(t, 10, c.Stats().Size)

	c.Set("overflow", "x", time.Hour)
	assert.LessOrEqual(t, c.Stats().Size, 10)
}

func TestGetOrComputeSingleFlight(t *testing.T) {
	c := New(100, 0, newFakeClock())
	var calls int64

	producer := func(ctx context.Context) (any, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return "computed", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute(context.Background(), "shared-key", time.Minute, producer)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	for _, r := range results {
		assert.Equal(t, "computed", r)
	}
}

func TestStatsHitRate(t *testing.T) {
	c := New(100, 0, newFakeClock())
	c.Set("k", "v", time.Minute)

	_, _ = c.Get("k")
	_, _ = c.Get("k")
	_, _ = c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.001)
}

func TestCreateKeyOrderInsensitive(t *testing.T) {
	a := CreateKey("discover", map[string]any{
		"withGenres":           []int{28, 12},
		"withOriginalLanguage": "en",
		"page":                 1,
	})
	b := CreateKey("discover", map[string]any{
		"page":                 1,
		"withOriginalLanguage": "en",
		"withGenres":           []int{28, 12},
	})
	assert.Equal(t, a, b)
}

func TestCreateKeyDropsEmptyValues(t *testing.T) {
	a := CreateKey("discover", map[string]any{
		"withGenres": []int{},
		"page":       1,
	})
	b := CreateKey("discover", map[string]any{
		"page": 1,
	})
	assert.Equal(t, a, b)
}

func TestCreateKeyDiffersOnSemanticChange(t *testing.T) {
	a := CreateKey("discover", map[string]any{"page": 1})
	b := CreateKey("discover", map[string]any{"page": 2})
	assert.NotEqual(t, a, b)
}

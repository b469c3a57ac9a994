package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"mediapick/cache"
	"mediapick/types/models"
)

// CachedAdapter wraps an Adapter with a TTLCache, read-through on Discover
// (the Recommender's hot path), GetVideos, GetWatchProviders, and GetDetails,
// each under its own configured TTL. Errors from the wrapped Adapter are
// returned and not cached. If a cached value has an unexpected type,
// Discover falls back to a direct call; GetVideos, GetWatchProviders and
// GetDetails return their zero value with no error.
type CachedAdapter struct {
	inner Adapter
	cache *cache.TTLCache

	discoverTTL time.Duration
	detailsTTL  time.Duration
	videosTTL   time.Duration
}

// NewCachedAdapter builds a CachedAdapter delegating to inner and caching
// results in c under the given per-call-class TTLs. A zero TTL falls back
// to the package's default preset.
func NewCachedAdapter(inner Adapter, c *cache.TTLCache, discoverTTL, detailsTTL, videosTTL time.Duration) *CachedAdapter {
	if discoverTTL <= 0 {
		discoverTTL = cache.DiscoverTTL
	}
	if detailsTTL <= 0 {
		detailsTTL = cache.DetailsTTL
	}
	if videosTTL <= 0 {
		videosTTL = cache.VideosTTL
	}
	return &CachedAdapter{inner: inner, cache: c, discoverTTL: discoverTTL, detailsTTL: detailsTTL, videosTTL: videosTTL}
}

func (a *CachedAdapter) Discover(ctx context.Context, kind models.Kind, params models.DiscoverParams) (Page, error) {
	key := discoverCacheKey(kind, params)

	v, err := a.cache.GetOrCompute(ctx, key, a.discoverTTL, func(ctx context.Context) (any, error) {
		return a.inner.Discover(ctx, kind, params)
	})
	if err != nil {
		return Page{}, err
	}
	page, ok := v.(Page)
	if !ok {
		// A cache corruption or soft-fail: recompute directly rather than
		// surfacing a type assertion panic.
		return a.inner.Discover(ctx, kind, params)
	}
	return page, nil
}

func (a *CachedAdapter) GetVideos(ctx context.Context, kind models.Kind, catalogID int64) ([]Video, error) {
	key := "videos:" + string(kind) + ":" + strconv.FormatInt(catalogID, 10)
	v, err := a.cache.GetOrCompute(ctx, key, a.videosTTL, func(ctx context.Context) (any, error) {
		return a.inner.GetVideos(ctx, kind, catalogID)
	})
	if err != nil {
		return nil, err
	}
	videos, _ := v.([]Video)
	return videos, nil
}

func (a *CachedAdapter) GetWatchProviders(ctx context.Context, kind models.Kind, catalogID int64) (ProvidersByRegion, error) {
	key := "providers:" + string(kind) + ":" + strconv.FormatInt(catalogID, 10)
	v, err := a.cache.GetOrCompute(ctx, key, a.detailsTTL, func(ctx context.Context) (any, error) {
		return a.inner.GetWatchProviders(ctx, kind, catalogID)
	})
	if err != nil {
		return nil, err
	}
	providers, _ := v.(ProvidersByRegion)
	return providers, nil
}

func (a *CachedAdapter) GetDetails(ctx context.Context, kind models.Kind, catalogID int64) (Details, error) {
	key := "details:" + string(kind) + ":" + strconv.FormatInt(catalogID, 10)
	v, err := a.cache.GetOrCompute(ctx, key, a.detailsTTL, func(ctx context.Context) (any, error) {
		return a.inner.GetDetails(ctx, kind, catalogID)
	})
	if err != nil {
		return Details{}, err
	}
	details, _ := v.(Details)
	return details, nil
}

// Stats returns the underlying TTLCache's hit/miss counters.
func (a *CachedAdapter) Stats() cache.Stats {
	return a.cache.Stats()
}

func discoverCacheKey(kind models.Kind, p models.DiscoverParams) string {
	genres := make([]int, len(p.WithGenres))
	copy(genres, p.WithGenres)

	params := map[string]any{
		"kind":                 string(kind),
		"withGenres":           genres,
		"withOriginalLanguage": p.WithOriginalLanguage,
		"voteAverageGte":       p.VoteAverageGte,
		"voteCountGte":         p.VoteCountGte,
		"sortBy":               string(p.SortBy),
		"page":                 p.Page,
		"language":             strings.ToLower(p.Language),
	}
	return cache.CreateKey("discover", params)
}

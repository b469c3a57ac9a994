package recommendation_test

import (
	"testing"

	"mediapick/services/recommendation"
	"mediapick/types/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_RemovesBlacklistedItems(t *testing.T) {
	f := recommendation.NewCandidateFilter(fixedRandom{})
	results := []models.MediaItem{
		{CatalogID: 1, Kind: models.KindMovie},
		{CatalogID: 2, Kind: models.KindMovie},
	}
	blacklist := map[models.Key]struct{}{
		{CatalogID: 1, Kind: models.KindMovie}: {},
	}

	item, ok := f.Select(results, blacklist)
	require.True(t, ok)
	assert.Equal(t, int64(2), item.CatalogID)
}

func TestSelect_FalseWhenAllBlacklisted(t *testing.T) {
	f := recommendation.NewCandidateFilter(fixedRandom{})
	results := []models.MediaItem{{CatalogID: 1, Kind: models.KindMovie}}
	blacklist := map[models.Key]struct{}{{CatalogID: 1, Kind: models.KindMovie}: {}}

	_, ok := f.Select(results, blacklist)
	assert.False(t, ok)
}

func TestSelect_FalseOnEmptyResults(t *testing.T) {
	f := recommendation.NewCandidateFilter(fixedRandom{})
	_, ok := f.Select(nil, map[models.Key]struct{}{})
	assert.False(t, ok)
}

// countingRandom records the pool size IntN was called with, to verify the
// candidate pool is capped at 20 even when more survivors exist.
type countingRandom struct {
	lastN int
}

func (r *countingRandom) IntN(n int) int {
	r.lastN = n
	return 0
}
func (r *countingRandom) Shuffle(n int, swap func(i, j int)) {}

func TestSelect_PoolCappedAtTwenty(t *testing.T) {
	random := &countingRandom{}
	f := recommendation.NewCandidateFilter(random)

	results := make([]models.MediaItem, 30)
	for i := range results {
		results[i] = models.MediaItem{CatalogID: int64(i), Kind: models.KindMovie}
	}

	_, ok := f.Select(results, map[models.Key]struct{}{})
	require.True(t, ok)
	assert.Equal(t, 20, random.lastN)
}

package catalog

import (
	"testing"

	"mediapick/types/models"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverOptions_MapsAllKnownParams(t *testing.T) {
	options := discoverOptions(models.DiscoverParams{
		WithGenres:           []int{28, 12},
		WithOriginalLanguage: "ja",
		VoteAverageGte:       6.5,
		VoteCountGte:         100,
		SortBy:               models.SortVoteAverageDesc,
		Page:                 3,
		Language:             "fr-FR",
	})

	assert.Equal(t, "28,12", options["with_genres"])
	assert.Equal(t, "ja", options["with_original_language"])
	assert.Equal(t, "6.5", options["vote_average.gte"])
	assert.Equal(t, "100", options["vote_count.gte"])
	assert.Equal(t, "vote_average.desc", options["sort_by"])
	assert.Equal(t, "3", options["page"])
	assert.Equal(t, "fr-FR", options["language"])
	assert.Equal(t, "false", options["include_adult"])
}

func TestDiscoverOptions_DefaultsSortAndLanguage(t *testing.T) {
	options := discoverOptions(models.DiscoverParams{Page: 1})
	assert.Equal(t, "popularity.desc", options["sort_by"])
	assert.Equal(t, "en-US", options["language"])
	_, hasGenres := options["with_genres"]
	assert.False(t, hasGenres)
}

func TestClampPage_BoundsToValidRange(t *testing.T) {
	assert.Equal(t, 1, clampPage(0))
	assert.Equal(t, 1, clampPage(-5))
	assert.Equal(t, 500, clampPage(501))
	assert.Equal(t, 42, clampPage(42))
}

func TestIsRetryable_MatchesRateLimitAndServiceErrors(t *testing.T) {
	assert.True(t, isRetryable(errString("status 429: too many requests")))
	assert.True(t, isRetryable(errString("503 Service Unavailable")))
	assert.False(t, isRetryable(errString("connection refused")))
}

type errString string

func (e errString) Error() string { return string(e) }

package recommendation_test

import (
	"testing"

	"mediapick/services/recommendation"
	"mediapick/types/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRandom makes genre-sampling deterministic: Shuffle is a no-op, so
// "two random genres" always picks the first two in slice order.
type fixedRandom struct{}

func (fixedRandom) IntN(n int) int                     { return 0 }
func (fixedRandom) Shuffle(n int, swap func(i, j int)) {}

func TestPlan_AllFiltersIsAlwaysFirst(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})
	strategies := p.Plan(models.KindMovie, []int{28, 12, 16}, []string{"en"}, 6.0)
	require.NotEmpty(t, strategies)
	assert.Equal(t, "All filters", strategies[0].Name)
	assert.Equal(t, []int{28, 12, 16}, strategies[0].GenreIDs)
	assert.Equal(t, 6.0, strategies[0].MinRating)
}

func TestPlan_TwoRandomGenresRequiresThreeGenres(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})

	withTwo := p.Plan(models.KindMovie, []int{28, 12}, []string{"en"}, 6.0)
	for _, s := range withTwo {
		assert.NotEqual(t, "2 random genres", s.Name)
	}

	withThree := p.Plan(models.KindMovie, []int{28, 12, 16}, []string{"en"}, 6.0)
	found := false
	for _, s := range withThree {
		if s.Name == "2 random genres" {
			found = true
			assert.Len(t, s.GenreIDs, 2)
		}
	}
	assert.True(t, found)
}

func TestPlan_SingleGenreStrategiesOnePerGenre(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})
	genres := []int{28, 12}
	strategies := p.Plan(models.KindMovie, genres, []string{"en"}, 6.0)

	count := 0
	for _, s := range strategies {
		if s.Name == "Single genre" {
			count++
		}
	}
	assert.Equal(t, len(genres), count)
}

func TestPlan_AlternativeLanguageStrategiesOnlyForExtraLanguages(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})

	single := p.Plan(models.KindMovie, []int{28}, []string{"en"}, 6.0)
	for _, s := range single {
		assert.NotEqual(t, "Alternative language", s.Name)
	}

	multi := p.Plan(models.KindMovie, []int{28}, []string{"en", "fr", "es"}, 6.0)
	altCount := 0
	for _, s := range multi {
		if s.Name == "Alternative language" {
			altCount++
		}
	}
	assert.Equal(t, 2, altCount)
}

func TestPlan_SacredLanguageRetainedExceptInAlternativeTail(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})
	strategies := p.Plan(models.KindMovie, []int{28}, []string{"en", "fr"}, 6.0)

	for _, s := range strategies {
		if s.Name == "Alternative language" {
			assert.Equal(t, []string{"fr"}, s.Languages)
			continue
		}
		assert.Equal(t, []string{"en"}, s.Languages)
	}
}

func TestPlan_AnimeForcesJapaneseAndUnionsAnimationGenre(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})
	strategies := p.Plan(models.KindAnime, []int{28}, []string{"en"}, 6.0)

	for _, s := range strategies {
		assert.Equal(t, []string{"ja"}, s.Languages)
		assert.Contains(t, s.GenreIDs, 16)
	}
}

func TestPlan_RatingNeverFloorsBelowFive(t *testing.T) {
	p := recommendation.NewStrategyPlanner(fixedRandom{})
	strategies := p.Plan(models.KindMovie, []int{28}, []string{"en"}, 5.2)

	for _, s := range strategies {
		if s.Name == "No genres, rating 5.0" || s.Name == "No genres, no rating floor" || s.Name == "Alternative language" {
			continue
		}
		assert.GreaterOrEqual(t, s.MinRating, 5.0)
	}
}

package recommendation

import (
	"mediapick/types/models"
)

// StrategyPlanner produces the ordered, cascading list of query strategies
// for a given (kind, genres, languages, minRating) combination. The first
// language is sacred: every strategy but the alternative-language tail
// retains languages[0].
type StrategyPlanner struct {
	random Random
}

// NewStrategyPlanner builds a planner using the given Random seam for
// two-genre sampling.
func NewStrategyPlanner(random Random) *StrategyPlanner {
	if random == nil {
		random = NewSystemRandom()
	}
	return &StrategyPlanner{random: random}
}

const (
	defaultVoteCountMin = 100
	minRatingFloor      = 5.0
	altLanguageFloor    = 0.0
)

// Plan builds the ordered strategy list for kind given genres, languages,
// and minRating. If languages is empty it substitutes ["en"]. When kind is
// ANIME every strategy is post-processed to force withOriginalLanguage="ja"
// and union in the animation genre id.
func (p *StrategyPlanner) Plan(kind models.Kind, genres []int, languages []string, minRating float64) []models.Strategy {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	primary := languages[0]

	var strategies []models.Strategy

	// 1. All filters.
	strategies = append(strategies, models.Strategy{
		Name:             "All filters",
		GenreIDs:         genres,
		Languages:        []string{primary},
		MinRating:        minRating,
		SortBy:           models.SortPopularityDesc,
		VoteCountMin:     defaultVoteCountMin,
		Pages:            pagesOneToFive(),
		TryMultiplePages: true,
	})

	// 2. All genres, rating -0.5. Precondition: minRating > 5.5.
	if minRating > 5.5 {
		strategies = append(strategies, models.Strategy{
			Name:             "All genres, rating -0.5",
			GenreIDs:         genres,
			Languages:        []string{primary},
			MinRating:        floorAt(minRating-0.5, 5.5),
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
	}

	// 3 & 4. Two random genres. Precondition: |genres| >= 3.
	if len(genres) >= 3 {
		twoGenres := pickTwoGenres(p.random, genres)
		strategies = append(strategies, models.Strategy{
			Name:             "2 random genres",
			GenreIDs:         twoGenres,
			Languages:        []string{primary},
			MinRating:        minRating,
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
		strategies = append(strategies, models.Strategy{
			Name:             "2 random genres, rating -1",
			GenreIDs:         twoGenres,
			Languages:        []string{primary},
			MinRating:        floorAt(minRating-1, 5.0),
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
	}

	// 5 & 6. Each single genre, full rating and rating -1.
	for _, g := range genres {
		strategies = append(strategies, models.Strategy{
			Name:             "Single genre",
			GenreIDs:         []int{g},
			Languages:        []string{primary},
			MinRating:        minRating,
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
	}
	for _, g := range genres {
		strategies = append(strategies, models.Strategy{
			Name:             "Single genre, rating -1",
			GenreIDs:         []int{g},
			Languages:        []string{primary},
			MinRating:        floorAt(minRating-1, 5.0),
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
	}

	// 7. No genres, keep rating. Precondition: minRating > 0.
	if minRating > 0 {
		strategies = append(strategies, models.Strategy{
			Name:             "No genres, keep rating",
			GenreIDs:         nil,
			Languages:        []string{primary},
			MinRating:        minRating,
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
	}

	// 8. No genres, rating -1.
	strategies = append(strategies, models.Strategy{
		Name:             "No genres, rating -1",
		GenreIDs:         nil,
		Languages:        []string{primary},
		MinRating:        floorAt(minRating-1, 5.0),
		SortBy:           models.SortPopularityDesc,
		VoteCountMin:     defaultVoteCountMin,
		Pages:            pagesOneToFive(),
		TryMultiplePages: true,
	})

	// 9. No genres, rating 5.0.
	strategies = append(strategies, models.Strategy{
		Name:             "No genres, rating 5.0",
		GenreIDs:         nil,
		Languages:        []string{primary},
		MinRating:        5.0,
		SortBy:           models.SortPopularityDesc,
		VoteCountMin:     defaultVoteCountMin,
		Pages:            pagesOneToFive(),
		TryMultiplePages: true,
	})

	// 10. No genres, no rating floor.
	strategies = append(strategies, models.Strategy{
		Name:             "No genres, no rating floor",
		GenreIDs:         nil,
		Languages:        []string{primary},
		MinRating:        0,
		SortBy:           models.SortPopularityDesc,
		VoteCountMin:     defaultVoteCountMin,
		Pages:            pagesOneToFive(),
		TryMultiplePages: true,
	})

	// 11. All genres, vote_average.desc, rating -1, voteCountMin=100.
	strategies = append(strategies, models.Strategy{
		Name:             "All genres, vote average desc",
		GenreIDs:         genres,
		Languages:        []string{primary},
		MinRating:        floorAt(minRating-1, 5.0),
		SortBy:           models.SortVoteAverageDesc,
		VoteCountMin:     defaultVoteCountMin,
		Pages:            pagesOneToFive(),
		TryMultiplePages: true,
	})

	// 12. All genres, voteCountMin=50, rating -1.
	strategies = append(strategies, models.Strategy{
		Name:             "All genres, low vote count",
		GenreIDs:         genres,
		Languages:        []string{primary},
		MinRating:        floorAt(minRating-1, 5.0),
		SortBy:           models.SortPopularityDesc,
		VoteCountMin:     50,
		Pages:            pagesOneToFive(),
		TryMultiplePages: true,
	})

	// 13. Alternative languages: sacred language is overridden here only,
	// because the user explicitly listed these as acceptable.
	for i := 1; i < len(languages); i++ {
		strategies = append(strategies, models.Strategy{
			Name:             "Alternative language",
			GenreIDs:         genres,
			Languages:        []string{languages[i]},
			MinRating:        floorAt(minRating-1, altLanguageFloor),
			SortBy:           models.SortPopularityDesc,
			VoteCountMin:     defaultVoteCountMin,
			Pages:            pagesOneToFive(),
			TryMultiplePages: true,
		})
	}

	if kind == models.KindAnime {
		for i := range strategies {
			applyAnimeRule(&strategies[i])
		}
	}

	return strategies
}

// applyAnimeRule forces the sacred Japanese language and unions in the
// animation genre id, regardless of what language/genres the strategy
// otherwise carried.
func applyAnimeRule(s *models.Strategy) {
	s.Languages = []string{models.AnimeOriginalLanguage}
	if !containsInt(s.GenreIDs, models.AnimationGenreID) {
		s.GenreIDs = append(append([]int(nil), s.GenreIDs...), models.AnimationGenreID)
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func floorAt(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

func pagesOneToFive() []int {
	return []int{1, 2, 3, 4, 5}
}

package models

// SortBy is the catalog-recognized sort order for a Discover call.
type SortBy string

const (
	SortPopularityDesc   SortBy = "popularity.desc"
	SortVoteAverageDesc  SortBy = "vote_average.desc"
)

// Strategy is a transient, single-use tuple of query parameters produced by
// the StrategyPlanner and consumed once by the Recommender.
type Strategy struct {
	Name               string
	GenreIDs           []int
	Languages          []string
	MinRating          float64
	SortBy             SortBy
	VoteCountMin       int
	Pages              []int
	TryMultiplePages   bool
}

// DiscoverParams is the canonical parameter set sent to CatalogAdapter.Discover
// for a single page of a single strategy.
type DiscoverParams struct {
	Kind                 Kind
	WithGenres           []int
	WithOriginalLanguage string
	VoteAverageGte       float64
	VoteCountGte         int
	SortBy               SortBy
	Page                 int
	IncludeAdult         bool
	Language             string
}

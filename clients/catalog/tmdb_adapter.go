package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mediapick/types/apperrors"
	"mediapick/types/models"
	"mediapick/utils/logger"

	tmdbClient "github.com/cyruzin/golang-tmdb"
	"golang.org/x/time/rate"
)

// TMDBAdapter implements Adapter against the TMDB discover/videos/watch
// providers/details endpoints, normalizing the movie and series duck-typed
// response shapes (title/release_date vs name/first_air_date) into the
// uniform MediaItem, the way the teacher's TMDBClient normalizes TMDB's two
// shapes into its own Movie/TVShow types.
type TMDBAdapter struct {
	client  *tmdbClient.Client
	queue   *admissionQueue
	timeout time.Duration
	retryWait time.Duration
}

// NewTMDBAdapter builds a TMDBAdapter with a single shared admission queue
// enforcing minSpacing between outgoing calls.
func NewTMDBAdapter(apiKey string, minSpacing time.Duration, burst int, timeout, retryWait time.Duration) (*TMDBAdapter, error) {
	c, err := tmdbClient.Init(apiKey)
	if err != nil {
		return nil, fmt.Errorf("init tmdb client: %w", err)
	}
	if minSpacing <= 0 {
		minSpacing = 100 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retryWait <= 0 {
		retryWait = time.Second
	}
	return &TMDBAdapter{
		client:    c,
		queue:     newAdmissionQueue(rate.Every(minSpacing), burst),
		timeout:   timeout,
		retryWait: retryWait,
	}, nil
}

func (a *TMDBAdapter) Discover(ctx context.Context, kind models.Kind, params models.DiscoverParams) (Page, error) {
	options := discoverOptions(params)

	switch kind {
	case models.KindMovie:
		var result *tmdbClient.DiscoverMovie
		err := a.call(ctx, func() error {
			var callErr error
			result, callErr = a.client.GetDiscoverMovie(options)
			return callErr
		})
		if err != nil {
			return Page{}, err
		}
		return moviePage(result), nil

	case models.KindSeries, models.KindAnime:
		var result *tmdbClient.DiscoverTV
		err := a.call(ctx, func() error {
			var callErr error
			result, callErr = a.client.GetDiscoverTV(options)
			return callErr
		})
		if err != nil {
			return Page{}, err
		}
		return seriesPage(result, kind), nil

	default:
		return Page{}, apperrors.New(apperrors.KindInvalidRequest, "unknown kind: "+string(kind))
	}
}

func (a *TMDBAdapter) GetVideos(ctx context.Context, kind models.Kind, catalogID int64) ([]Video, error) {
	id := int(catalogID)
	options := map[string]string{}
	var videos []Video

	switch kind {
	case models.KindMovie:
		err := a.call(ctx, func() error {
			result, callErr := a.client.GetMovieVideos(id, options)
			if callErr != nil {
				return callErr
			}
			for _, v := range result.Results {
				videos = append(videos, Video{Key: v.Key, Site: v.Site, Type: v.Type})
			}
			return nil
		})
		return videos, err

	default:
		err := a.call(ctx, func() error {
			result, callErr := a.client.GetTVVideos(id, options)
			if callErr != nil {
				return callErr
			}
			for _, v := range result.Results {
				videos = append(videos, Video{Key: v.Key, Site: v.Site, Type: v.Type})
			}
			return nil
		})
		return videos, err
	}
}

func (a *TMDBAdapter) GetWatchProviders(ctx context.Context, kind models.Kind, catalogID int64) (ProvidersByRegion, error) {
	id := int(catalogID)
	regions := ProvidersByRegion{}

	switch kind {
	case models.KindMovie:
		err := a.call(ctx, func() error {
			result, callErr := a.client.GetMovieWatchProviders(id, nil)
			if callErr != nil {
				return callErr
			}
			for region, entry := range result.Results {
				names := make([]string, 0, len(entry.Flatrate))
				for _, p := range entry.Flatrate {
					names = append(names, p.ProviderName)
				}
				regions[region] = names
			}
			return nil
		})
		return regions, err

	default:
		err := a.call(ctx, func() error {
			result, callErr := a.client.GetTVWatchProviders(id, nil)
			if callErr != nil {
				return callErr
			}
			for region, entry := range result.Results {
				names := make([]string, 0, len(entry.Flatrate))
				for _, p := range entry.Flatrate {
					names = append(names, p.ProviderName)
				}
				regions[region] = names
			}
			return nil
		})
		return regions, err
	}
}

func (a *TMDBAdapter) GetDetails(ctx context.Context, kind models.Kind, catalogID int64) (Details, error) {
	id := int(catalogID)
	options := map[string]string{"language": "en-US"}
	var details Details

	switch kind {
	case models.KindMovie:
		err := a.call(ctx, func() error {
			result, callErr := a.client.GetMovieDetails(id, options)
			if callErr != nil {
				return callErr
			}
			details = Details{
				Item: models.MediaItem{
					CatalogID:        int64(result.ID),
					Kind:             models.KindMovie,
					Title:            result.Title,
					Overview:         result.Overview,
					PosterPath:       result.PosterPath,
					BackdropPath:     result.BackdropPath,
					ReleaseDate:      result.ReleaseDate,
					Rating:           float64(result.VoteAverage),
					VoteCount:        int(result.VoteCount),
					OriginalLanguage: result.OriginalLanguage,
				},
				Runtime: result.Runtime,
				Status:  result.Status,
			}
			return nil
		})
		return details, err

	default:
		err := a.call(ctx, func() error {
			result, callErr := a.client.GetTVDetails(id, options)
			if callErr != nil {
				return callErr
			}
			details = Details{
				Item: models.MediaItem{
					CatalogID:        int64(result.ID),
					Kind:             kind,
					Title:            result.Name,
					Overview:         result.Overview,
					PosterPath:       result.PosterPath,
					BackdropPath:     result.BackdropPath,
					ReleaseDate:      result.FirstAirDate,
					Rating:           float64(result.VoteAverage),
					VoteCount:        int(result.VoteCount),
					OriginalLanguage: result.OriginalLanguage,
				},
				Status: result.Status,
			}
			return nil
		})
		return details, err
	}
}

// call admits through the rate-limit queue, then performs fn. On a 429/503
// it waits at least retryWait and retries fn exactly once; any other
// failure, or a second failure, surfaces as CatalogUnavailable. The
// configured timeout bounds only the wait before the retry: fn takes no
// context, so a call already in flight is not cut off by it.
func (a *TMDBAdapter) call(ctx context.Context, fn func() error) error {
	log := logger.FromContext(ctx)

	if err := a.queue.wait(ctx); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	err := fn()
	if err == nil {
		return nil
	}

	if !isRetryable(err) {
		return apperrors.Wrap(apperrors.KindCatalogUnavailable, "catalog call failed", err)
	}

	log.Warn().Err(err).Msg("catalog call rate limited, retrying once")
	select {
	case <-time.After(a.retryWait):
	case <-callCtx.Done():
		return callCtx.Err()
	}

	if err := a.queue.wait(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return apperrors.Wrap(apperrors.KindCatalogUnavailable, "catalog call failed after retry", err)
	}
	return nil
}

func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "503") ||
		strings.Contains(msg, "too many requests") || strings.Contains(msg, "service unavailable")
}

func discoverOptions(p models.DiscoverParams) map[string]string {
	options := map[string]string{
		"language":      orDefault(p.Language, "en-US"),
		"include_adult": "false",
		"page":          strconv.Itoa(clampPage(p.Page)),
	}
	if len(p.WithGenres) > 0 {
		ids := make([]string, len(p.WithGenres))
		for i, g := range p.WithGenres {
			ids[i] = strconv.Itoa(g)
		}
		options["with_genres"] = strings.Join(ids, ",")
	}
	if p.WithOriginalLanguage != "" {
		options["with_original_language"] = p.WithOriginalLanguage
	}
	if p.VoteAverageGte > 0 {
		options["vote_average.gte"] = strconv.FormatFloat(p.VoteAverageGte, 'f', 1, 64)
	}
	if p.VoteCountGte > 0 {
		options["vote_count.gte"] = strconv.Itoa(p.VoteCountGte)
	}
	if p.SortBy != "" {
		options["sort_by"] = string(p.SortBy)
	} else {
		options["sort_by"] = string(models.SortPopularityDesc)
	}
	return options
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > 500 {
		return 500
	}
	return page
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func moviePage(result *tmdbClient.DiscoverMovie) Page {
	items := make([]models.MediaItem, 0, len(result.Results))
	for _, r := range result.Results {
		genres := make([]int, len(r.GenreIDs))
		for i, g := range r.GenreIDs {
			genres[i] = int(g)
		}
		items = append(items, models.MediaItem{
			CatalogID:        int64(r.ID),
			Kind:             models.KindMovie,
			Title:            r.Title,
			Overview:         r.Overview,
			PosterPath:       r.PosterPath,
			BackdropPath:     r.BackdropPath,
			ReleaseDate:      r.ReleaseDate,
			Rating:           float64(r.VoteAverage),
			VoteCount:        int(r.VoteCount),
			GenreIDs:         genres,
			OriginalLanguage: r.OriginalLanguage,
		})
	}
	return Page{
		Results:      items,
		Page:         int(result.Page),
		TotalPages:   int(result.TotalPages),
		TotalResults: int(result.TotalResults),
	}
}

func seriesPage(result *tmdbClient.DiscoverTV, kind models.Kind) Page {
	items := make([]models.MediaItem, 0, len(result.Results))
	for _, r := range result.Results {
		genres := make([]int, len(r.GenreIDs))
		for i, g := range r.GenreIDs {
			genres[i] = int(g)
		}
		items = append(items, models.MediaItem{
			CatalogID:        int64(r.ID),
			Kind:             kind,
			Title:            r.Name,
			Overview:         r.Overview,
			PosterPath:       r.PosterPath,
			BackdropPath:     r.BackdropPath,
			ReleaseDate:      r.FirstAirDate,
			Rating:           float64(r.VoteAverage),
			VoteCount:        int(r.VoteCount),
			GenreIDs:         genres,
			OriginalLanguage: r.OriginalLanguage,
		})
	}
	return Page{
		Results:      items,
		Page:         int(result.Page),
		TotalPages:   int(result.TotalPages),
		TotalResults: int(result.TotalResults),
	}
}

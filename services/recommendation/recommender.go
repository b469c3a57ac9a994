// Package recommendation implements the recommendation core: the strategy
// planner, candidate filter, preference-weight learner, and the Recommender
// that orchestrates them against a rate-limited, cached external catalog.
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mediapick/cache"
	"mediapick/clients/catalog"
	"mediapick/repository"
	"mediapick/types/apperrors"
	"mediapick/types/models"
	"mediapick/utils/logger"

	"github.com/google/uuid"
)

// recentActionWindow is how many of the user's most recent actions feed the
// SMART-mode content-type diversity reorder.
const recentActionWindow = 3

// defaultSmartMinRating is substituted when the profile has no minRating.
const defaultSmartMinRating = 6.0

// Recommender orchestrates a single Recommend call: resolve mode, plan
// strategies, execute each via the catalog (cached), filter, and select.
type Recommender struct {
	catalog  catalog.Adapter
	planner  *StrategyPlanner
	filter   *CandidateFilter
	profiles ProfileStore
	history  HistoryStore
	weights  WeightStore
}

// NewRecommender wires the Recommender's dependencies explicitly — no
// process-wide cache or store singletons, per the design notes.
func NewRecommender(
	catalogAdapter catalog.Adapter,
	planner *StrategyPlanner,
	filter *CandidateFilter,
	profiles ProfileStore,
	history HistoryStore,
	weights WeightStore,
) *Recommender {
	return &Recommender{
		catalog:  catalogAdapter,
		planner:  planner,
		filter:   filter,
		profiles: profiles,
		history:  history,
		weights:  weights,
	}
}

// resolvedRequest is the kind-ordered, parameter-resolved form of a
// Recommend call, after FILTERED/SMART mode resolution.
type resolvedRequest struct {
	kindOrder []models.Kind
	genres    []int
	languages []string
	minRating float64
}

// Recommend resolves mode into query parameters, then traverses candidate
// kinds, strategies, and pages in order until a surviving item is found.
func (r *Recommender) Recommend(ctx context.Context, userID string, mode Mode, overlay Overlay) Outcome {
	requestID := uuid.New().String()
	ctx, log := logger.WithUserID(ctx, userID)
	log = log.With().Str("request_id", requestID).Str("mode", string(mode)).Logger()
	ctx = logger.WithContext(ctx, log)
	log.Debug().Msg("recommend request started")

	req, err := r.resolve(ctx, userID, mode, overlay)
	if err != nil {
		return Outcome{Err: err}
	}

	blacklist, err := r.history.Blacklist(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load blacklist, proceeding with empty set")
		blacklist = map[models.Key]struct{}{}
	}

	for _, kind := range req.kindOrder {
		strategies := r.planner.Plan(kind, req.genres, req.languages, req.minRating)

		for _, strategy := range strategies {
			for _, page := range strategy.Pages {
				if err := ctx.Err(); err != nil {
					return Outcome{Err: err}
				}

				params := models.DiscoverParams{
					Kind:                 kind,
					WithGenres:           strategy.GenreIDs,
					WithOriginalLanguage: strategy.Languages[0],
					VoteAverageGte:       strategy.MinRating,
					VoteCountGte:         strategy.VoteCountMin,
					SortBy:               strategy.SortBy,
					Page:                 page,
				}

				result, err := r.catalog.Discover(ctx, kind, params)
				if err != nil {
					if apperrors.Is(err, apperrors.KindCatalogUnavailable) {
						return Outcome{Err: err}
					}
					log.Warn().Err(err).Str("strategy", strategy.Name).Msg("discover call failed, aborting traversal")
					return Outcome{Err: apperrors.Wrap(apperrors.KindCatalogUnavailable, "catalog discover failed", err)}
				}

				item, ok := r.filter.Select(result.Results, blacklist)
				if !ok {
					continue
				}

				return Outcome{
					Item: item,
					Attribution: Attribution{
						StrategyName:      strategy.Name,
						StrategyGenres:    strategy.GenreIDs,
						StrategyLanguages: strategy.Languages,
						Kind:              kind,
						Explanation:       explain(strategy, kind),
					},
				}
			}
		}
	}

	return Outcome{Err: apperrors.ErrNoResult}
}

// resolve turns (mode, overlay) into genres/languages/minRating and the
// ordered list of content kinds to try, per §4.5.
func (r *Recommender) resolve(ctx context.Context, userID string, mode Mode, overlay Overlay) (resolvedRequest, error) {
	switch mode {
	case ModeFiltered:
		return r.resolveFiltered(overlay)
	case ModeSmart:
		return r.resolveSmart(ctx, userID)
	default:
		return resolvedRequest{}, apperrors.New(apperrors.KindInvalidRequest, "unknown mode: "+string(mode))
	}
}

func (r *Recommender) resolveFiltered(overlay Overlay) (resolvedRequest, error) {
	if !overlay.Kind.Valid() {
		return resolvedRequest{}, apperrors.New(apperrors.KindInvalidRequest, "FILTERED mode requires a kind")
	}
	language := overlay.Language
	if language == "" {
		language = "en"
	}
	minRating := 0.0
	if overlay.MinRating != nil {
		minRating = *overlay.MinRating
	}
	return resolvedRequest{
		kindOrder: []models.Kind{overlay.Kind},
		genres:    append([]int(nil), overlay.Genres...),
		languages: []string{language},
		minRating: minRating,
	}, nil
}

func (r *Recommender) resolveSmart(ctx context.Context, userID string) (resolvedRequest, error) {
	log := logger.FromContext(ctx)

	profile, err := r.profiles.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return resolvedRequest{}, apperrors.ErrProfileIncomplete
	case err != nil:
		return resolvedRequest{}, apperrors.Wrap(apperrors.KindStoreError, "failed to load taste profile", err)
	}
	if !profile.Usable() {
		return resolvedRequest{}, apperrors.ErrProfileIncomplete
	}

	kindOrder := append([]models.Kind(nil), profile.ContentTypes...)

	weights, err := r.weights.Get(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load preference weights, skipping weight-based kind ordering")
	} else if weights != nil {
		kindOrder = orderByWeightDesc(kindOrder, weights)
	}

	recent, err := r.history.RecentActions(ctx, userID, recentActionWindow, false)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load recent actions, skipping diversity reorder")
	} else {
		kindOrder = diversityReorder(kindOrder, recent)
	}

	minRating := defaultSmartMinRating
	if profile.MinRating != nil {
		minRating = *profile.MinRating
	}

	return resolvedRequest{
		kindOrder: kindOrder,
		genres:    append([]int(nil), profile.Genres...),
		languages: append([]string(nil), profile.Languages...),
		minRating: minRating,
	}, nil
}

// orderByWeightDesc sorts kinds by their learned weight descending, stable
// on ties so the profile's original insertion order is retained.
func orderByWeightDesc(kinds []models.Kind, weights *models.PreferenceWeights) []models.Kind {
	ordered := append([]models.Kind(nil), kinds...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return weights.KindWeight(ordered[i]) > weights.KindWeight(ordered[j])
	})
	return ordered
}

// diversityReorder moves kinds absent from the most-recent-actions set R
// ahead of kinds present in R, preserving relative order within each
// partition — so a run of repeated kinds in recent history doesn't get
// offered a fourth time in a row.
func diversityReorder(kinds []models.Kind, recent []models.Kind) []models.Kind {
	inRecent := make(map[models.Kind]struct{}, len(recent))
	for _, k := range recent {
		inRecent[k] = struct{}{}
	}

	var fresh, stale []models.Kind
	for _, k := range kinds {
		if _, seen := inRecent[k]; seen {
			stale = append(stale, k)
		} else {
			fresh = append(fresh, k)
		}
	}
	return append(fresh, stale...)
}

func explain(s models.Strategy, kind models.Kind) string {
	switch {
	case len(s.GenreIDs) == 0:
		return fmt.Sprintf("matched your language preference for %s with relaxed genre filters", kind)
	case len(s.GenreIDs) == 1:
		return fmt.Sprintf("matched one of your preferred genres for %s", kind)
	default:
		return fmt.Sprintf("matched your preferred genres and language for %s", kind)
	}
}

// RecordAction upserts the history entry for item and, for LIKED/DISLIKED,
// schedules an asynchronous weight update that must not block the caller.
func (r *Recommender) RecordAction(ctx context.Context, userID string, action models.Action, item models.MediaItem, source models.Source) error {
	if !action.Valid() {
		return apperrors.New(apperrors.KindInvalidRequest, "unknown action: "+string(action))
	}

	entry := &models.HistoryEntry{
		UserID:      userID,
		CatalogID:   item.CatalogID,
		Kind:        item.Kind,
		Title:       item.Title,
		Action:      action,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.ReleaseDate,
		Source:      source,
		ActedAt:     time.Now(),
	}
	if item.Rating != 0 {
		rating := item.Rating
		entry.Rating = &rating
	}

	if err := r.history.Upsert(ctx, entry); err != nil {
		return apperrors.Wrap(apperrors.KindStoreError, "failed to record history action", err)
	}

	if action == models.ActionLiked || action == models.ActionDisliked {
		r.dispatchWeightUpdate(userID, action, item)
	}

	return nil
}

// dispatchWeightUpdate fires the weight update in its own goroutine with an
// independent, unbounded context, so a slow or failing store write never
// blocks or fails RecordAction's caller. Failures are logged, never
// propagated.
func (r *Recommender) dispatchWeightUpdate(userID string, action models.Action, item models.MediaItem) {
	go func() {
		ctx := context.Background()
		log := logger.FromContext(ctx)

		meta := models.ActionMeta{
			GenreIDs: item.GenreIDs,
			Kind:     item.Kind,
			Language: item.OriginalLanguage,
		}
		if err := r.weights.UpdateOnAction(ctx, userID, action, meta); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("weight update failed")
		}
	}()
}

// CacheStats exposes the underlying TTLCache.Stats() when the Recommender's
// catalog adapter is cache-backed, for observability endpoints. It returns
// the zero value when the adapter isn't a *catalog.CachedAdapter.
func (r *Recommender) CacheStats() cache.Stats {
	cached, ok := r.catalog.(*catalog.CachedAdapter)
	if !ok {
		return cache.Stats{}
	}
	return cached.Stats()
}

// WarmCache issues one broad Discover call per kind (movie, series, anime):
// page 1, popularity order, and no genre, language, rating or vote-count
// filter, so a cache-backed adapter stores those pages. Recommend always
// sends a language and a vote-count filter, so its calls use other cache
// keys and are not served by these entries. Per-kind failures are logged
// and WarmCache always returns nil.
func (r *Recommender) WarmCache(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, kind := range []models.Kind{models.KindMovie, models.KindSeries, models.KindAnime} {
		params := models.DiscoverParams{
			Kind:   kind,
			SortBy: models.SortPopularityDesc,
			Page:   1,
		}
		if _, err := r.catalog.Discover(ctx, kind, params); err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Msg("cache warm failed for kind")
		}
	}
	return nil
}

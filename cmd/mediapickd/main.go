// Command mediapickd wires the recommendation core's configuration,
// storage, catalog adapter, and recommender together and runs a single
// WarmCache pass, mirroring the teacher's main.go wiring order (logger,
// config, database, then the domain services) without the teacher's HTTP
// router layer, which is outside this core's scope.
package main

import (
	"context"
	"time"

	"mediapick/cache"
	"mediapick/clients/catalog"
	"mediapick/config"
	"mediapick/db"
	"mediapick/repository"
	"mediapick/services/recommendation"
	"mediapick/utils/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.Initialize()

	ctx := context.Background()

	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := db.Open(cfg.Store.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	tmdb, err := catalog.NewTMDBAdapter(
		cfg.Catalog.APIKey,
		cfg.Catalog.MinSpacing,
		cfg.Catalog.Burst,
		cfg.Catalog.RequestTimeout,
		cfg.Catalog.RetryWait,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init catalog adapter")
	}

	ttlCache := cache.New(cfg.Cache.MaxSize, cfg.Cache.SweepInterval, cache.SystemClock{})
	defer ttlCache.Close()
	cachedCatalog := catalog.NewCachedAdapter(tmdb, ttlCache, cfg.Cache.DiscoverTTL, cfg.Cache.DetailsTTL, cfg.Cache.VideosTTL)

	profiles := repository.NewProfileRepository(database)
	history := repository.NewHistoryRepository(database)
	weights := repository.NewWeightRepository(database)

	planner := recommendation.NewStrategyPlanner(recommendation.NewSystemRandom())
	filter := recommendation.NewCandidateFilter(recommendation.NewSystemRandom())
	recommender := recommendation.NewRecommender(cachedCatalog, planner, filter, profiles, history, weights)

	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := recommender.WarmCache(warmCtx); err != nil {
		log.Warn().Err(err).Msg("cache warm pass failed")
	}

	stats := recommender.CacheStats()
	log.Info().
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int("size", stats.Size).
		Msg("recommendation core ready")
}

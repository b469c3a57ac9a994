package repository

import (
	"context"
	"fmt"

	"mediapick/types/models"

	"gorm.io/gorm"
)

// HistoryRepository is the gorm-backed implementation of
// recommendation.HistoryStore.
type HistoryRepository interface {
	Upsert(ctx context.Context, entry *models.HistoryEntry) error
	ListByUser(ctx context.Context, userID string, filter models.HistoryFilter) (models.HistoryPage, error)
	Blacklist(ctx context.Context, userID string) (map[models.Key]struct{}, error)
	RecentActions(ctx context.Context, userID string, n int, excludeSkipped bool) ([]models.Kind, error)
	Stats(ctx context.Context, userID string) (models.AggregatedStats, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository builds a HistoryRepository over db.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Upsert writes entry, replacing any prior action recorded for the same
// (userId, catalogId, kind) per the unique index, per §4.7's "an upsert by
// key replaces the prior action" rule.
func (r *historyRepository) Upsert(ctx context.Context, entry *models.HistoryEntry) error {
	var existing models.HistoryEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND catalog_id = ? AND kind = ?", entry.UserID, entry.CatalogID, entry.Kind).
		First(&existing)

	switch {
	case result.Error == nil:
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
			return fmt.Errorf("update history entry: %w", err)
		}
		return nil
	case result.Error == gorm.ErrRecordNotFound:
		if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
			return fmt.Errorf("create history entry: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("lookup history entry for upsert: %w", result.Error)
	}
}

// ListByUser returns a page of the user's history entries, most recent
// first, optionally narrowed to a single action.
func (r *historyRepository) ListByUser(ctx context.Context, userID string, filter models.HistoryFilter) (models.HistoryPage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&models.HistoryEntry{}).Where("user_id = ?", userID)
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return models.HistoryPage{}, fmt.Errorf("count history entries: %w", err)
	}

	var items []models.HistoryEntry
	if err := query.Order("acted_at DESC").Limit(limit).Offset(filter.Skip).Find(&items).Error; err != nil {
		return models.HistoryPage{}, fmt.Errorf("list history entries: %w", err)
	}

	return models.HistoryPage{
		Items:   items,
		Total:   int(total),
		HasMore: int64(filter.Skip+len(items)) < total,
	}, nil
}

// Blacklist returns the set of (catalogId, kind) keys the user has marked
// BLACKLISTED, for the Recommender's candidate filter.
func (r *historyRepository) Blacklist(ctx context.Context, userID string) (map[models.Key]struct{}, error) {
	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND action = ?", userID, models.ActionBlacklisted).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load blacklist: %w", err)
	}

	blacklist := make(map[models.Key]struct{}, len(entries))
	for _, e := range entries {
		blacklist[models.Key{CatalogID: e.CatalogID, Kind: e.Kind}] = struct{}{}
	}
	return blacklist, nil
}

// RecentActions returns the kinds of the n most recent actions, most recent
// first. If excludeSkipped is true, SKIPPED rows are omitted from the
// underlying query entirely rather than merely from the result count.
func (r *historyRepository) RecentActions(ctx context.Context, userID string, n int, excludeSkipped bool) ([]models.Kind, error) {
	query := r.db.WithContext(ctx).Model(&models.HistoryEntry{}).Where("user_id = ?", userID)
	if excludeSkipped {
		query = query.Where("action <> ?", models.ActionSkipped)
	}

	var entries []models.HistoryEntry
	if err := query.Order("acted_at DESC").Limit(n).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load recent actions: %w", err)
	}

	kinds := make([]models.Kind, len(entries))
	for i, e := range entries {
		kinds[i] = e.Kind
	}
	return kinds, nil
}

// Stats aggregates the user's recorded actions by disposition.
func (r *historyRepository) Stats(ctx context.Context, userID string) (models.AggregatedStats, error) {
	var entries []models.HistoryEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return models.AggregatedStats{}, fmt.Errorf("load history for stats: %w", err)
	}

	stats := models.AggregatedStats{TotalActions: len(entries)}
	for _, e := range entries {
		switch e.Action {
		case models.ActionLiked:
			stats.LikeCount++
		case models.ActionDisliked:
			stats.DislikeCount++
		case models.ActionBlacklisted:
			stats.BlacklistCount++
		}
	}
	return stats, nil
}

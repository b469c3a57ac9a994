package recommendation

import (
	"context"

	"mediapick/types/models"
)

// ProfileStore is the collaborator interface over durable taste profiles.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.TasteProfile, error)
	Upsert(ctx context.Context, profile *models.TasteProfile) error
}

// HistoryStore is the collaborator interface over per-user recommendation
// actions: the blacklist view and the recent-action tail it supplies are
// consumed directly by the Recommender.
type HistoryStore interface {
	Upsert(ctx context.Context, entry *models.HistoryEntry) error
	ListByUser(ctx context.Context, userID string, filter models.HistoryFilter) (models.HistoryPage, error)
	Blacklist(ctx context.Context, userID string) (map[models.Key]struct{}, error)
	// RecentActions returns the kinds of the most recent n actions, most
	// recent first. If excludeSkipped is true, SKIPPED actions are omitted
	// from consideration entirely — the alternate branch the Open
	// Questions describe; callers wanting "any recorded action" pass false.
	RecentActions(ctx context.Context, userID string, n int, excludeSkipped bool) ([]models.Kind, error)
	Stats(ctx context.Context, userID string) (models.AggregatedStats, error)
}

// WeightStore is the collaborator interface over learned preference
// weights.
type WeightStore interface {
	Get(ctx context.Context, userID string) (*models.PreferenceWeights, error)
	UpdateOnAction(ctx context.Context, userID string, action models.Action, meta models.ActionMeta) error
}

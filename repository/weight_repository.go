package repository

import (
	"context"
	"fmt"
	"sync"

	"mediapick/types/models"

	"gorm.io/gorm"
)

// likeDelta and dislikeDelta are the learning rule's per-action adjustments,
// clamped to [0, 100] by models.PreferenceWeights' own bounds.
const (
	likeDelta    = 5
	dislikeDelta = -3
)

// WeightRepository is the gorm-backed implementation of
// recommendation.WeightStore.
type WeightRepository interface {
	Get(ctx context.Context, userID string) (*models.PreferenceWeights, error)
	UpdateOnAction(ctx context.Context, userID string, action models.Action, meta models.ActionMeta) error
}

type weightRepository struct {
	db *gorm.DB

	// mu serializes the read-modify-write per process. gorm's row lock
	// would be the cross-process answer; a single mediapickd process is
	// the deployment target for this core, so an in-process mutex is
	// sufficient and avoids a dialect-specific SELECT ... FOR UPDATE.
	mu sync.Mutex
}

// NewWeightRepository builds a WeightRepository over db.
func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &weightRepository{db: db}
}

// Get returns the user's current weights, or a zero-value
// (all-defaults) PreferenceWeights if the user has no recorded actions yet.
func (r *weightRepository) Get(ctx context.Context, userID string) (*models.PreferenceWeights, error) {
	weights, err := r.find(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.PreferenceWeights{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get preference weights: %w", err)
	}
	return weights, nil
}

func (r *weightRepository) find(ctx context.Context, userID string) (*models.PreferenceWeights, error) {
	var weights models.PreferenceWeights
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&weights)
	if result.Error != nil {
		return nil, result.Error
	}
	return &weights, nil
}

// UpdateOnAction applies the learning rule for a LIKED (+5) or DISLIKED (-3)
// action to the genre, kind, and language weights implicated by meta,
// creating the row on first action. Every adjustment is clamped to [0, 100]
// by models.ClampWeight.
func (r *weightRepository) UpdateOnAction(ctx context.Context, userID string, action models.Action, meta models.ActionMeta) error {
	delta := likeDelta
	if action == models.ActionDisliked {
		delta = dislikeDelta
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	weights, err := r.find(ctx, userID)
	isNew := false
	if err == gorm.ErrRecordNotFound {
		weights = &models.PreferenceWeights{UserID: userID}
		isNew = true
	} else if err != nil {
		return fmt.Errorf("load preference weights for update: %w", err)
	}

	if weights.GenreWeights == nil {
		weights.GenreWeights = map[int]int{}
	}
	if weights.KindWeights == nil {
		weights.KindWeights = map[models.Kind]int{}
	}
	if weights.LangWeights == nil {
		weights.LangWeights = map[string]int{}
	}

	for _, genreID := range meta.GenreIDs {
		weights.GenreWeights[genreID] = models.ClampWeight(weights.GenreWeight(genreID) + delta)
	}
	if meta.Kind != "" {
		weights.KindWeights[meta.Kind] = models.ClampWeight(weights.KindWeight(meta.Kind) + delta)
	}
	if meta.Language != "" {
		weights.LangWeights[meta.Language] = models.ClampWeight(weights.LanguageWeight(meta.Language) + delta)
	}

	if action == models.ActionLiked {
		weights.TotalLikes++
	} else {
		weights.TotalDislikes++
	}

	if isNew {
		if err := r.db.WithContext(ctx).Create(weights).Error; err != nil {
			return fmt.Errorf("create preference weights: %w", err)
		}
		return nil
	}
	if err := r.db.WithContext(ctx).Save(weights).Error; err != nil {
		return fmt.Errorf("update preference weights: %w", err)
	}
	return nil
}

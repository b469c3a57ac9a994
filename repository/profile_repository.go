package repository

import (
	"context"
	"fmt"

	"mediapick/types/models"

	"gorm.io/gorm"
)

// ProfileRepository is the gorm-backed implementation of
// recommendation.ProfileStore.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.TasteProfile, error)
	Upsert(ctx context.Context, profile *models.TasteProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a ProfileRepository over db.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID returns the user's taste profile, or ErrNotFound if the user
// has never created one.
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*models.TasteProfile, error) {
	var profile models.TasteProfile
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find taste profile: %w", result.Error)
	}
	return &profile, nil
}

// Upsert creates the user's profile if absent, or overwrites it in place
// (preserving ID/CreatedAt) if one already exists. One profile per user.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.TasteProfile) error {
	var existing models.TasteProfile
	result := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing)

	switch {
	case result.Error == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
			return fmt.Errorf("update taste profile: %w", err)
		}
		return nil
	case result.Error == gorm.ErrRecordNotFound:
		if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
			return fmt.Errorf("create taste profile: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("lookup taste profile for upsert: %w", result.Error)
	}
}

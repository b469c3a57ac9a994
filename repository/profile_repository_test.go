package repository_test

import (
	"context"
	"testing"

	"mediapick/repository"
	"mediapick/types/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TasteProfile{},
		&models.HistoryEntry{},
		&models.PreferenceWeights{},
	)
	require.NoError(t, err)

	return db
}

func ptrFloat(v float64) *float64 { return &v }

func TestProfileRepository_FindByUserID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)

	_, err := repo.FindByUserID(context.Background(), "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileRepository_Upsert_CreatesThenUpdates(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	profile := &models.TasteProfile{
		UserID:       "user-1",
		ContentTypes: []models.Kind{models.KindMovie},
		Genres:       []int{28, 12, 16},
		Languages:    []string{"en"},
		MinRating:    ptrFloat(6.5),
		Complete:     true,
	}
	require.NoError(t, repo.Upsert(ctx, profile))
	assert.NotZero(t, profile.ID)

	found, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []int{28, 12, 16}, found.Genres)
	assert.True(t, found.Usable())

	found.Genres = append(found.Genres, 35)
	require.NoError(t, repo.Upsert(ctx, found))

	updated, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, found.ID, updated.ID)
	assert.Len(t, updated.Genres, 4)
}

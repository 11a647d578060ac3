package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipedia/backend/internal/model"
)

func TestAddRatingDuplicateReturnsConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	recipe := createTestRecipe(t, db, "Tomato Soup")
	userID := uuid.New()

	require.NoError(t, svc.AddRating(context.Background(), recipe.ID, userID, 4))

	err := svc.AddRating(context.Background(), recipe.ID, userID, 2)
	assert.ErrorIs(t, err, ErrAlreadyRated)

	// First write wins: the stored value must be untouched.
	var stored model.Rating
	require.NoError(t, db.Where("user_id = ? AND recipe_id = ?", userID, recipe.ID).First(&stored).Error)
	assert.Equal(t, 4, stored.Rating)
}

func TestAddRatingUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)

	err := svc.AddRating(context.Background(), 42, uuid.New(), 5)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestAddRatingDifferentUsersSameRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	recipe := createTestRecipe(t, db, "Apple Crumble")

	require.NoError(t, svc.AddRating(context.Background(), recipe.ID, uuid.New(), 3))
	require.NoError(t, svc.AddRating(context.Background(), recipe.ID, uuid.New(), 5))
}

func TestAverageRatingNoRatings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	recipe := createTestRecipe(t, db, "Plain Rice")

	avg, err := svc.AverageRating(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestAverageRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	recipe := createTestRecipe(t, db, "Apple Crumble")

	require.NoError(t, svc.AddRating(context.Background(), recipe.ID, uuid.New(), 3))
	require.NoError(t, svc.AddRating(context.Background(), recipe.ID, uuid.New(), 5))

	avg, err := svc.AverageRating(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
}

func TestBatchAverageRatingsOmitsUnrated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	rated := createTestRecipe(t, db, "Rated")
	unrated := createTestRecipe(t, db, "Unrated")

	require.NoError(t, svc.AddRating(context.Background(), rated.ID, uuid.New(), 4))

	averages, err := svc.BatchAverageRatings(context.Background(), []uint{rated.ID, unrated.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]float64{rated.ID: 4.0}, averages)
}

func TestBatchAverageRatingsEmptyInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)

	averages, err := svc.BatchAverageRatings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, averages)
}

func TestUserRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRatingService(db)
	recipe := createTestRecipe(t, db, "Tomato Soup")
	userID := uuid.New()

	rating, err := svc.UserRating(context.Background(), recipe.ID, userID)
	require.NoError(t, err)
	assert.Nil(t, rating)

	require.NoError(t, svc.AddRating(context.Background(), recipe.ID, userID, 5))

	rating, err = svc.UserRating(context.Background(), recipe.ID, userID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 5, rating.Rating)
}

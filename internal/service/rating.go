package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipedia/backend/internal/model"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAlreadyRated   = errors.New("user already rated this recipe")
)

// RatingService handles rating persistence and aggregation
type RatingService struct {
	db *gorm.DB
}

// NewRatingService creates a new RatingService instance
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// AddRating records a user's rating for a recipe. The insert is conditional on
// the (user_id, recipe_id) unique index; a conflicting row means the user has
// already rated and the stored value is left untouched.
func (s *RatingService) AddRating(ctx context.Context, recipeID uint, userID uuid.UUID, value int) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	rating := model.Rating{
		UserID:   userID,
		RecipeID: recipeID,
		Rating:   value,
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoNothing: true,
	}).Create(&rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyRated
	}
	return nil
}

// AverageRating returns the arithmetic mean of a recipe's ratings, 0.0 when
// the recipe has none.
func (s *RatingService) AverageRating(ctx context.Context, recipeID uint) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// BatchAverageRatings computes per-recipe averages for a set of ids in one
// grouped aggregate. Recipes with no ratings are absent from the result map.
func (s *RatingService) BatchAverageRatings(ctx context.Context, recipeIDs []uint) (map[uint]float64, error) {
	averages := make(map[uint]float64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return averages, nil
	}

	var rows []struct {
		RecipeID uint
		Average  float64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("recipe_id, AVG(rating) AS average").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		averages[row.RecipeID] = row.Average
	}
	return averages, nil
}

// UserRating returns the caller's rating for a recipe, nil if they never
// rated it. The unique index guarantees at most one row.
func (s *RatingService) UserRating(ctx context.Context, recipeID uint, userID uuid.UUID) (*model.Rating, error) {
	var rating model.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipedia/backend/internal/model"
)

// ListPageSize is the number of recipes shown per listing page.
const ListPageSize = 21

const defaultRecommendLimit = 6

const autocompleteLimit = 10

// RecipeListing is the assembled result of a catalog listing request.
type RecipeListing struct {
	Recipes     []model.Recipe   `json:"recipes"`
	CurrentPage int              `json:"current_page"`
	TotalPages  int              `json:"total_pages"`
	IsSearching bool             `json:"is_searching"`
	Recommended []model.Recipe   `json:"recommended"`
	TopRecipes  []model.Recipe   `json:"top_recipes"`
	TopRatings  map[uint]float64 `json:"top_ratings"`
}

// RecipeDetail is a single recipe with everything its detail page needs.
type RecipeDetail struct {
	Recipe        model.Recipe   `json:"recipe"`
	TagNames      []string       `json:"tags"`
	AverageRating float64        `json:"average_rating"`
	UserRating    *int           `json:"user_rating,omitempty"`
	Similar       []model.Recipe `json:"similar_recipes"`
}

// RecipeService assembles listing and detail views over the catalog store,
// the rating aggregates and the remote recommender.
type RecipeService struct {
	db             *gorm.DB
	ratings        *RatingService
	recommender    *RecommenderClient
	images         *ImageService
	recommendLimit int
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, ratings *RatingService, recommender *RecommenderClient, images *ImageService, recommendLimit int) *RecipeService {
	if recommendLimit <= 0 {
		recommendLimit = defaultRecommendLimit
	}
	return &RecipeService{
		db:             db,
		ratings:        ratings,
		recommender:    recommender,
		images:         images,
		recommendLimit: recommendLimit,
	}
}

// List builds one page of the catalog. Without a search term the full set is
// reshuffled on every call, so a recipe's page is intentionally not stable
// across requests. A search term switches to stable id ordering and
// suppresses the recommendation panels.
func (s *RecipeService) List(ctx context.Context, searchTerm string, page int, userID *uuid.UUID) (*RecipeListing, error) {
	if page < 1 {
		page = 1
	}
	searching := searchTerm != ""

	query := s.db.WithContext(ctx).Model(&model.Recipe{})
	if searching {
		like := "%" + strings.ToLower(searchTerm) + "%"
		query = query.Where("LOWER(name) LIKE ?", like).Order("id")
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	if !searching {
		rand.Shuffle(len(recipes), func(i, j int) {
			recipes[i], recipes[j] = recipes[j], recipes[i]
		})
	}

	totalPages := (len(recipes) + ListPageSize - 1) / ListPageSize
	start := (page - 1) * ListPageSize
	if start > len(recipes) {
		start = len(recipes)
	}
	end := start + ListPageSize
	if end > len(recipes) {
		end = len(recipes)
	}
	items := recipes[start:end]
	s.images.AttachURLs(items)

	listing := &RecipeListing{
		Recipes:     items,
		CurrentPage: page,
		TotalPages:  totalPages,
		IsSearching: searching,
		TopRatings:  map[uint]float64{},
	}
	if searching {
		return listing, nil
	}

	if userID != nil {
		ids := s.recommender.Recommended(ctx, *userID)
		if len(ids) > s.recommendLimit {
			ids = ids[:s.recommendLimit]
		}
		recommended, err := s.recipesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		listing.Recommended = recommended
	}

	top, err := s.recipesByIDs(ctx, s.recommender.TopRecipes(ctx))
	if err != nil {
		return nil, err
	}
	listing.TopRecipes = top

	topIDs := make([]uint, len(top))
	for i, r := range top {
		topIDs[i] = r.ID
	}
	ratings, err := s.ratings.BatchAverageRatings(ctx, topIDs)
	if err != nil {
		return nil, err
	}
	listing.TopRatings = ratings

	return listing, nil
}

// Detail assembles a recipe's detail page: ingredients with name variants,
// tag names, rating aggregates, the caller's own rating when an identity is
// present, and similar recipes from the recommender.
func (s *RecipeService) Detail(ctx context.Context, recipeID uint, userID *uuid.UUID) (*RecipeDetail, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Names").
		Preload("Tags.Tag").
		First(&recipe, recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	recipe.ImageURL = s.images.RecipeImageURL(recipe.ID)

	// Associations whose tag row is gone are skipped, not an error.
	tagNames := make([]string, 0, len(recipe.Tags))
	for _, rt := range recipe.Tags {
		if rt.Tag != nil {
			tagNames = append(tagNames, rt.Tag.Name)
		}
	}

	average, err := s.ratings.AverageRating(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	detail := &RecipeDetail{
		Recipe:        recipe,
		TagNames:      tagNames,
		AverageRating: average,
	}

	if userID != nil {
		rating, err := s.ratings.UserRating(ctx, recipeID, *userID)
		if err != nil {
			return nil, err
		}
		if rating != nil {
			value := rating.Rating
			detail.UserRating = &value
		}
	}

	similar, err := s.recipesByIDs(ctx, s.recommender.Similar(ctx, recipeID))
	if err != nil {
		return nil, err
	}
	detail.Similar = similar

	return detail, nil
}

// Autocomplete returns recipe names matching the term, capped.
func (s *RecipeService) Autocomplete(ctx context.Context, term string) ([]string, error) {
	names := make([]string, 0, autocompleteLimit)
	query := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Order("name").
		Limit(autocompleteLimit)
	if term != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if err := query.Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// Create persists a new recipe with its ingredients and tag associations.
func (s *RecipeService) Create(ctx context.Context, recipe *model.Recipe) error {
	return s.db.WithContext(ctx).Create(recipe).Error
}

// Update applies changes to an existing recipe.
func (s *RecipeService) Update(ctx context.Context, id uint, recipe *model.Recipe) error {
	var existing model.Recipe
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	recipe.ID = id
	return s.db.WithContext(ctx).Model(&existing).Updates(recipe).Error
}

// Delete removes a recipe; its ingredients and tag links cascade.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Select("Ingredients", "Tags").Delete(&recipe).Error
}

// recipesByIDs resolves recommender ids against the store, preserving the
// remote ordering and dropping ids with no matching recipe.
func (s *RecipeService) recipesByIDs(ctx context.Context, ids []uint) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []model.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	ordered := make([]model.Recipe, 0, len(found))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	s.images.AttachURLs(ordered)
	return ordered, nil
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipedia/backend/internal/middleware"
	"github.com/recipedia/backend/internal/model"
	"github.com/recipedia/backend/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
	ratings *service.RatingService
}

func NewRecipeHandler(recipes *service.RecipeService, ratings *service.RatingService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		ratings: ratings,
	}
}

// RegisterRoutes wires the catalog routes. The path shapes are kept
// compatible with the previous frontend (/Recipes, /Recipes/Details/:id,
// /Recipes/AddRating, /Recipes/Autocomplete). A nil rate limiter disables
// rating throttling (tests, local development without Redis).
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator, ratingLimiter *middleware.RateLimiter) {
	recipes := router.Group("/Recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(validator), h.List)
		recipes.GET("/Details/:id", middleware.OptionalAuthMiddleware(validator), h.Details)
		recipes.GET("/Autocomplete", h.Autocomplete)

		addRating := []gin.HandlerFunc{middleware.AuthMiddleware(validator)}
		if ratingLimiter != nil {
			addRating = append(addRating, ratingLimiter.RateLimitMiddleware())
		}
		addRating = append(addRating, h.AddRating)
		recipes.POST("/AddRating", addRating...)

		recipes.POST("/Create", middleware.AuthMiddleware(validator), h.Create)
		recipes.POST("/Edit/:id", middleware.AuthMiddleware(validator), h.Edit)
		recipes.POST("/Delete/:id", middleware.AuthMiddleware(validator), h.Delete)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	listing, err := h.recipes.List(c.Request.Context(), c.Query("searchString"), page, middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *RecipeHandler) Details(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	detail, err := h.recipes.Detail(c.Request.Context(), uint(id), middleware.CurrentUserID(c))
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

type addRatingRequest struct {
	RecipeID    uint `form:"recipeId" json:"recipeId" binding:"required"`
	RatingValue int  `form:"ratingValue" json:"ratingValue"`
}

func (h *RecipeHandler) AddRating(c *gin.Context) {
	var req addRatingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	err := h.ratings.AddRating(c.Request.Context(), req.RecipeID, *userID, req.RatingValue)
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": "User already rated this recipe"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add rating"})
	default:
		c.Status(http.StatusOK)
	}
}

func (h *RecipeHandler) Autocomplete(c *gin.Context) {
	names, err := h.recipes.Autocomplete(c.Request.Context(), c.Query("term"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recipes.Create(c.Request.Context(), &recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Edit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.recipes.Update(c.Request.Context(), uint(id), &recipe)
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "id": id})
	}
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	err = h.recipes.Delete(c.Request.Context(), uint(id))
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
	}
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipedia/backend/config"
	"github.com/recipedia/backend/internal/api"
	"github.com/recipedia/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	validator middleware.TokenValidator,
	ratingLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("")
	authHandler.RegisterRoutes(root)
	recipeHandler.RegisterRoutes(root, validator, ratingLimiter)

	return router
}

package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipedia/backend/config"
	"github.com/recipedia/backend/internal/api"
	"github.com/recipedia/backend/internal/database"
	"github.com/recipedia/backend/internal/middleware"
	"github.com/recipedia/backend/internal/router"
	"github.com/recipedia/backend/internal/service"
)

// Server wires the application together and owns the HTTP listener.
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New builds the full service graph from configuration.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	// Redis only backs the rating rate limiter; run without it if absent.
	var ratingLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, rating rate limiting disabled: %v", err)
	} else {
		ratingLimiter = middleware.NewRatingRateLimiter(redisClient)
	}

	var s3Config *config.S3Config
	if cfg.S3Bucket != "" {
		s3Config, err = config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("S3_BUCKET_NAME not set, serving bucket-relative image URLs")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	images := service.NewImageService(s3Config)
	recommender := service.NewRecommenderClient(cfg.RecommenderURL, cfg.RecommenderTimeout)
	ratings := service.NewRatingService(db)
	recipes := service.NewRecipeService(db, ratings, recommender, images, cfg.RecommendLimit)

	engine := router.SetupRouter(
		cfg,
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipes, ratings),
		authService,
		ratingLimiter,
	)

	return &Server{router: engine, cfg: cfg}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

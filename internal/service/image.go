package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/recipedia/backend/config"
	"github.com/recipedia/backend/internal/model"
)

// ImageService derives recipe image URLs and handles uploads to the image
// bucket. Image URLs are a pure function of the recipe id and are never
// stored on the recipe row.
type ImageService struct {
	s3Config *config.S3Config
	baseURL  string
}

// NewImageService creates a new ImageService instance. A nil S3 config
// disables uploads and yields bucket-relative URLs (local development).
func NewImageService(s3Config *config.S3Config) *ImageService {
	baseURL := ""
	if s3Config != nil {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", s3Config.BucketName)
	}
	return &ImageService{
		s3Config: s3Config,
		baseURL:  baseURL,
	}
}

// RecipeImageURL returns the public image URL for a recipe id.
func (s *ImageService) RecipeImageURL(recipeID uint) string {
	return fmt.Sprintf("%s/recipes/%d.jpg", s.baseURL, recipeID)
}

// AttachURLs fills the derived ImageURL field on each recipe in place.
func (s *ImageService) AttachURLs(recipes []model.Recipe) {
	for i := range recipes {
		recipes[i].ImageURL = s.RecipeImageURL(recipes[i].ID)
	}
}

// UploadRecipeImage stores image bytes under the recipe's canonical key and
// returns the public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uint, data []byte, contentType string) (string, error) {
	if s.s3Config == nil {
		return "", errors.New("image storage is not configured")
	}

	key := fmt.Sprintf("recipes/%d.jpg", recipeID)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recipe image: %w", err)
	}

	publicURL := s.RecipeImageURL(recipeID)
	log.Printf("[ImageService] uploaded image for recipe %d: %s", recipeID, publicURL)
	return publicURL, nil
}

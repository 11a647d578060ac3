package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecommenderClient queries the remote recommendation service. All calls are
// best-effort: transport errors, non-2xx responses and malformed bodies
// degrade to an empty id list and are never surfaced to callers, so a remote
// outage looks the same as "no recommendations".
type RecommenderClient struct {
	baseURL string
	client  *http.Client
}

// NewRecommenderClient creates a new RecommenderClient instance
func NewRecommenderClient(baseURL string, timeout time.Duration) *RecommenderClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RecommenderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Recommended returns recipe ids personalized for the given user.
func (c *RecommenderClient) Recommended(ctx context.Context, userID uuid.UUID) []uint {
	var body struct {
		Recommendations []uint `json:"recommendations"`
	}
	endpoint := fmt.Sprintf("%s/recommend?user_id=%s", c.baseURL, url.QueryEscape(userID.String()))
	if !c.getJSON(ctx, endpoint, &body) {
		return nil
	}
	return body.Recommendations
}

// TopRecipes returns the globally popular recipe ids.
func (c *RecommenderClient) TopRecipes(ctx context.Context) []uint {
	var body struct {
		TopRecipes []uint `json:"top_recipes"`
	}
	if !c.getJSON(ctx, c.baseURL+"/top_recipes", &body) {
		return nil
	}
	return body.TopRecipes
}

// Similar returns recipe ids related to the given recipe.
func (c *RecommenderClient) Similar(ctx context.Context, recipeID uint) []uint {
	var ids []uint
	endpoint := fmt.Sprintf("%s/similar_recipes/%d", c.baseURL, recipeID)
	if !c.getJSON(ctx, endpoint, &ids) {
		return nil
	}
	return ids
}

func (c *RecommenderClient) getJSON(ctx context.Context, endpoint string, out interface{}) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("[Recommender] failed to build request for %s: %v", endpoint, err)
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[Recommender] request to %s failed: %v", endpoint, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Recommender] %s returned status %d", endpoint, resp.StatusCode)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("[Recommender] failed to decode response from %s: %v", endpoint, err)
		return false
	}
	return true
}

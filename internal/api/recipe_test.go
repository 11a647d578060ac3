package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipedia/backend/internal/model"
	"github.com/recipedia/backend/internal/service"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Ingredient{},
		&model.IngredientName{},
		&model.Tag{},
		&model.RecipeTag{},
		&model.Rating{},
	))

	// Recommender stub: empty panels for every query.
	mux := http.NewServeMux()
	mux.HandleFunc("/recommend", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recommendations": []}`))
	})
	mux.HandleFunc("/top_recipes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"top_recipes": []}`))
	})
	mux.HandleFunc("/similar_recipes/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	remote := httptest.NewServer(mux)
	t.Cleanup(remote.Close)

	authService := service.NewAuthService(db, "test-secret")
	ratings := service.NewRatingService(db)
	recipes := service.NewRecipeService(
		db,
		ratings,
		service.NewRecommenderClient(remote.URL, time.Second),
		service.NewImageService(nil),
		6,
	)

	router := gin.New()
	root := router.Group("")
	NewAuthHandler(authService).RegisterRoutes(root)
	NewRecipeHandler(recipes, ratings).RegisterRoutes(root, authService, nil)

	return router, db, authService
}

func registerTestUser(t *testing.T, auth *service.AuthService, email string) string {
	t.Helper()
	token, err := auth.Register(email, "tester", "password123")
	require.NoError(t, err)
	return token
}

func createTestRecipe(t *testing.T, db *gorm.DB, name string) model.Recipe {
	t.Helper()
	recipe := model.Recipe{Name: name, Kcal: "250"}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}

func postRatingForm(router *gin.Engine, token string, recipeID uint, value int) *httptest.ResponseRecorder {
	body := fmt.Sprintf("recipeId=%d&ratingValue=%d", recipeID, value)
	req := httptest.NewRequest("POST", "/Recipes/AddRating", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddRatingRequiresAuth(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	recipe := createTestRecipe(t, db, "Tomato Soup")

	w := postRatingForm(router, "", recipe.ID, 5)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddRating(t *testing.T) {
	router, db, auth := setupTestRouter(t)
	recipe := createTestRecipe(t, db, "Tomato Soup")
	token := registerTestUser(t, auth, "cook@example.com")

	w := postRatingForm(router, token, recipe.ID, 5)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// Second rating by the same user conflicts.
	w = postRatingForm(router, token, recipe.ID, 1)
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored model.Rating
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.Rating)
}

func TestAddRatingUnknownRecipe(t *testing.T) {
	router, _, auth := setupTestRouter(t)
	token := registerTestUser(t, auth, "cook@example.com")

	w := postRatingForm(router, token, 999, 5)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddRatingMissingRecipeID(t *testing.T) {
	router, _, auth := setupTestRouter(t)
	token := registerTestUser(t, auth, "cook@example.com")

	req := httptest.NewRequest("POST", "/Recipes/AddRating", strings.NewReader("ratingValue=5"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRecipes(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	createTestRecipe(t, db, "Tomato Soup")
	createTestRecipe(t, db, "Apple Crumble")

	req := httptest.NewRequest("GET", "/Recipes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Recipes     []model.Recipe `json:"recipes"`
		CurrentPage int            `json:"current_page"`
		TotalPages  int            `json:"total_pages"`
		IsSearching bool           `json:"is_searching"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Recipes, 2)
	assert.Equal(t, 1, response.CurrentPage)
	assert.Equal(t, 1, response.TotalPages)
	assert.False(t, response.IsSearching)
}

func TestListRecipesSearch(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	createTestRecipe(t, db, "Tomato Soup")
	createTestRecipe(t, db, "Apple Crumble")

	req := httptest.NewRequest("GET", "/Recipes?searchString=tomato", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Recipes     []model.Recipe `json:"recipes"`
		IsSearching bool           `json:"is_searching"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Recipes, 1)
	assert.Equal(t, "Tomato Soup", response.Recipes[0].Name)
	assert.True(t, response.IsSearching)
}

func TestRecipeDetails(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	recipe := createTestRecipe(t, db, "Tomato Soup")

	req := httptest.NewRequest("GET", fmt.Sprintf("/Recipes/Details/%d", recipe.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Recipe        model.Recipe `json:"recipe"`
		AverageRating float64      `json:"average_rating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Tomato Soup", response.Recipe.Name)
	assert.Equal(t, 0.0, response.AverageRating)
}

func TestRecipeDetailsNotFound(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/Recipes/Details/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest("GET", "/Recipes/Details/not-a-number", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAutocomplete(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	createTestRecipe(t, db, "Apple Pie")
	createTestRecipe(t, db, "Applesauce")
	createTestRecipe(t, db, "Tomato Soup")

	req := httptest.NewRequest("GET", "/Recipes/Autocomplete?term=apple", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var names []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Equal(t, []string{"Apple Pie", "Applesauce"}, names)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/Recipes/Create", strings.NewReader(`{"name":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndDeleteRecipe(t *testing.T) {
	router, db, auth := setupTestRouter(t)
	token := registerTestUser(t, auth, "cook@example.com")

	body := `{"name":"Oatmeal Pancakes","kcal":"350","ingredients":[{"names":[{"name":"oats"}]}]}`
	req := httptest.NewRequest("POST", "/Recipes/Create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	req = httptest.NewRequest("POST", fmt.Sprintf("/Recipes/Delete/%d", created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

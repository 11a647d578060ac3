package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipedia/backend/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func createTestRecipe(t *testing.T, db *gorm.DB, name string) model.Recipe {
	t.Helper()
	recipe := model.Recipe{Name: name, Kcal: "250"}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}

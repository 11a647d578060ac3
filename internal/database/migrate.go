package database

import (
	"gorm.io/gorm"

	"github.com/recipedia/backend/internal/model"
)

// AutoMigrate brings the schema up to date for all catalog entities. The
// ratings table gets its (user_id, recipe_id) unique index here, which is
// what makes duplicate-rating detection atomic.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Ingredient{},
		&model.IngredientName{},
		&model.Tag{},
		&model.RecipeTag{},
		&model.Rating{},
	)
}

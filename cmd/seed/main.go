package main

import (
	"log"

	"github.com/recipedia/backend/config"
	"github.com/recipedia/backend/internal/database"
	"github.com/recipedia/backend/internal/model"
)

// Seeds a development database with a handful of recipes, tags and
// ingredient name variants.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	tags := []model.Tag{
		{Name: "breakfast"},
		{Name: "dessert"},
		{Name: "vegetarian"},
	}
	for i := range tags {
		if err := db.FirstOrCreate(&tags[i], model.Tag{Name: tags[i].Name}).Error; err != nil {
			log.Fatalf("Failed to seed tag %q: %v", tags[i].Name, err)
		}
	}

	recipes := []model.Recipe{
		{
			Name: "Oatmeal Pancakes", Kcal: "350", Protein: "12g", Fat: "9g",
			Carbohydrates: "55g", Fiber: "6g",
			Ingredients: []model.Ingredient{
				{Names: []model.IngredientName{{Name: "oat flakes"}, {Name: "rolled oats"}}},
				{Names: []model.IngredientName{{Name: "egg"}, {Name: "eggs"}}},
				{Names: []model.IngredientName{{Name: "milk"}}},
			},
		},
		{
			Name: "Apple Crumble", Kcal: "420", Protein: "4g", Fat: "18g",
			Carbohydrates: "62g", Fiber: "4g",
			Ingredients: []model.Ingredient{
				{Names: []model.IngredientName{{Name: "apple"}, {Name: "apples"}}},
				{Names: []model.IngredientName{{Name: "butter"}}},
				{Names: []model.IngredientName{{Name: "flour"}, {Name: "wheat flour"}}},
			},
		},
		{
			Name: "Tomato Soup", Kcal: "180", Protein: "5g", Fat: "7g",
			Carbohydrates: "24g", Fiber: "5g",
			Ingredients: []model.Ingredient{
				{Names: []model.IngredientName{{Name: "tomato"}, {Name: "tomatoes"}}},
				{Names: []model.IngredientName{{Name: "vegetable stock"}}},
			},
		},
	}
	for i := range recipes {
		if err := db.Where(model.Recipe{Name: recipes[i].Name}).FirstOrCreate(&recipes[i]).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipes[i].Name, err)
		}
	}

	links := []model.RecipeTag{
		{RecipeID: recipes[0].ID, TagID: tags[0].ID},
		{RecipeID: recipes[0].ID, TagID: tags[2].ID},
		{RecipeID: recipes[1].ID, TagID: tags[1].ID},
		{RecipeID: recipes[2].ID, TagID: tags[2].ID},
	}
	for _, link := range links {
		if err := db.FirstOrCreate(&model.RecipeTag{}, link).Error; err != nil {
			log.Fatalf("Failed to seed recipe tag: %v", err)
		}
	}

	log.Printf("Seeded %d recipes and %d tags", len(recipes), len(tags))
}

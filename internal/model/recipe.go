package model

import (
	"time"
)

// Recipe is the aggregate root of the catalog. Nutritional facts are kept as
// free-form text to match the source data (values like "12g" or "ok. 250").
// ImageURL is never persisted; it is derived from the recipe id.
type Recipe struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Name          string       `gorm:"size:255;not null" json:"name"`
	Carbohydrates string       `gorm:"size:50" json:"carbohydrates"`
	Fat           string       `gorm:"size:50" json:"fat"`
	Fiber         string       `gorm:"size:50" json:"fiber"`
	Kcal          string       `gorm:"size:50" json:"kcal"`
	Protein       string       `gorm:"size:50" json:"protein"`
	ImageURL      string       `gorm:"-" json:"image_url"`
	Ingredients   []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Tags          []RecipeTag  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Ingredient belongs to exactly one recipe and carries its name variants.
type Ingredient struct {
	ID       uint             `gorm:"primaryKey" json:"id"`
	RecipeID uint             `gorm:"not null;index" json:"recipe_id"`
	Names    []IngredientName `gorm:"constraint:OnDelete:CASCADE" json:"names,omitempty"`
}

// IngredientName is one spelling/variant of an ingredient's name.
type IngredientName struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	IngredientID uint   `gorm:"not null;index" json:"ingredient_id"`
	Name         string `gorm:"size:255;not null" json:"name"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

// RecipeTag links recipes and tags. The composite primary key guarantees a
// (recipe, tag) pair appears at most once.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	Tag      *Tag `json:"tag,omitempty"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

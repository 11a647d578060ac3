package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's rating of one recipe. The composite unique index makes
// the first write for a (user, recipe) pair win; later inserts conflict at the
// store level instead of racing through a read-then-write check.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_ratings_user_recipe" json:"recipe_id"`
	Rating    int       `gorm:"not null" json:"rating"`
}

func (Rating) TableName() string {
	return "ratings"
}

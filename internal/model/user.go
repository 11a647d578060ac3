package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity entity. The catalog only ever consumes its ID; the
// credential fields exist so the service can issue tokens itself.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string         `gorm:"size:100;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

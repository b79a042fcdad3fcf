package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a registered user. Users are created once via registration
// and never updated or deleted afterwards.
type User struct {
	ID         uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	Email      string            `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Attributes datatypes.JSONMap `json:"attributes,omitempty" gorm:"type:json"` // pass-through registration payload
	CreatedAt  time.Time         `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

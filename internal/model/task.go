package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategory is assigned when a task is created without one. Categories
// are free-form labels; nothing validates them against a fixed set.
const DefaultCategory = "To-Do"

// Task represents a user-owned unit of work. Order is a plain sort key for
// display; equal values are allowed and broken by id at read time.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:255;not null;default:'To-Do'"`
	UserID      string    `json:"userId" gorm:"size:255;not null;index"`
	Order       int64     `json:"order" gorm:"column:sort_order;not null;index"`
	Timestamp   time.Time `json:"timestamp" gorm:"autoCreateTime"` // creation time, never mutated
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

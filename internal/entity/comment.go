package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	SuggestionID uuid.UUID   `gorm:"type:uuid;not null;index:idx_comments_thread,priority:1"`
	Suggestion   *Suggestion `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID     uuid.UUID   `gorm:"type:uuid;not null"`
	Author       *User       `gorm:"constraint:OnDelete:CASCADE"`
	Content      string      `gorm:"size:1000;not null"`
	IsInternal   bool        `gorm:"not null;default:false"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index:idx_comments_thread,priority:2"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

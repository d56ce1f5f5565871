package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upvote is unique per (suggestion, user); the composite index is the only guard against double counting.
type Upvote struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	SuggestionID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_upvotes_suggestion_user,priority:1" json:"suggestionId"`
	Suggestion   *Suggestion `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_upvotes_suggestion_user,priority:2" json:"userId"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}

func (u *Upvote) TableName() string {
	return "upvotes"
}

func (u *Upvote) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

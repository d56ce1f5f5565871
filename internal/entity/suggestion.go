package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// SuggestionStatuses lists the named lifecycle buckets. Any status may move to any other.
var SuggestionStatuses = []string{StatusPending, StatusApproved, StatusRejected, StatusInProgress, StatusCompleted}

type Suggestion struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title         string     `gorm:"size:200;not null"`
	Content       string     `gorm:"size:2000;not null"`
	CategoryID    *uuid.UUID `gorm:"type:uuid;index"`
	Category      *Category  `gorm:"constraint:OnDelete:SET NULL"`
	Status        string     `gorm:"size:20;not null;default:pending;index"`
	IsAnonymous   bool       `gorm:"not null"`
	SubmittedByID *uuid.UUID `gorm:"type:uuid;index"`
	SubmittedBy   *User      `gorm:"constraint:OnDelete:SET NULL"`
	AdminNotes    *string    `gorm:"size:1000"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (s *Suggestion) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSuggestionCreated = "suggestion.created"
	EventSuggestionUpdated = "suggestion.updated"
	EventSuggestionDeleted = "suggestion.deleted"
	EventUpvoteChanged     = "upvote.changed"
)

// ChangeEvent is what dashboards receive over the live change stream.
// It never carries submitter identity.
type ChangeEvent struct {
	Type         string    `json:"type"`
	SuggestionID uuid.UUID `json:"suggestionId"`
	Status       string    `json:"status,omitempty"`
	UpvoteCount  *int64    `json:"upvoteCount,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// SuggestionNotice is the payload of the admin email for a new suggestion.
type SuggestionNotice struct {
	Title       string
	Content     string
	Category    string
	SubmittedBy string
	IsAnonymous bool
}

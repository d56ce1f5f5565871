package dto

import (
	"time"

	"provenance.com/innovationhub/internal/entity"
	commonDto "provenance.com/innovationhub/pkg/dto"
	"github.com/google/uuid"
)

const (
	MaxTitleLength      = 200
	MaxContentLength    = 2000
	MaxAdminNotesLength = 1000
	DefaultPageSize     = 10
)

type CreateSuggestionRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Content    string `json:"content" binding:"required,max=2000"`
	CategoryID string `json:"category" binding:"required,uuid"`
	// IsAnonymous defaults to true when omitted.
	IsAnonymous *bool `json:"isAnonymous"`
}

type UpdateSuggestionRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=pending approved rejected in-progress completed"`
	AdminNotes *string `json:"adminNotes" binding:"omitempty,max=1000"`
}

type SuggestionFilter struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status"`
	Category string `form:"category"`
}

type SearchQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit"`
}

type SuggestionResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Content     string                     `json:"content"`
	Category    *commonDto.CategorySummary `json:"category"`
	Status      string                     `json:"status"`
	IsAnonymous bool                       `json:"isAnonymous"`
	SubmittedBy *commonDto.AuthorResponse  `json:"submittedBy,omitempty"`
	AdminNotes  *string                    `json:"adminNotes,omitempty"`
	UpvoteCount int64                      `json:"upvoteCount"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// NewSuggestionResponse builds the API view; anonymous suggestions never expose their submitter.
func NewSuggestionResponse(s *entity.Suggestion, upvoteCount int64) SuggestionResponse {
	res := SuggestionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Content:     s.Content,
		Status:      s.Status,
		IsAnonymous: s.IsAnonymous,
		AdminNotes:  s.AdminNotes,
		UpvoteCount: upvoteCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Category != nil {
		res.Category = &commonDto.CategorySummary{
			ID:    s.Category.ID,
			Name:  s.Category.Name,
			Color: s.Category.Color,
		}
	}
	if !s.IsAnonymous && s.SubmittedBy != nil {
		res.SubmittedBy = &commonDto.AuthorResponse{
			ID:    s.SubmittedBy.ID,
			Name:  s.SubmittedBy.Name,
			Email: s.SubmittedBy.Email,
		}
	}
	return res
}

type PaginatedSuggestionResponse struct {
	Suggestions []SuggestionResponse     `json:"suggestions"`
	Pagination  commonDto.PaginationMeta `json:"pagination"`
}

type SearchSuggestionResponse struct {
	Query       string               `json:"query"`
	Suggestions []SuggestionResponse `json:"suggestions"`
	Total       int64                `json:"total"`
}

package dto

import (
	"time"

	"provenance.com/innovationhub/internal/entity"
	commonDto "provenance.com/innovationhub/pkg/dto"
	"github.com/google/uuid"
)

const MaxContentLength = 1000

type CreateCommentRequest struct {
	Content    string `json:"content" binding:"required,max=1000"`
	IsInternal bool   `json:"isInternal"`
}

type DeleteCommentQuery struct {
	CommentID string `form:"commentId" binding:"required,uuid"`
}

type CommentResponse struct {
	ID           uuid.UUID                 `json:"id"`
	SuggestionID uuid.UUID                 `json:"suggestion"`
	Author       *commonDto.AuthorResponse `json:"author"`
	Content      string                    `json:"content"`
	IsInternal   bool                      `json:"isInternal"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

func NewCommentResponse(c *entity.Comment) CommentResponse {
	res := CommentResponse{
		ID:           c.ID,
		SuggestionID: c.SuggestionID,
		Content:      c.Content,
		IsInternal:   c.IsInternal,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.Author != nil {
		res.Author = &commonDto.AuthorResponse{
			ID:    c.Author.ID,
			Name:  c.Author.Name,
			Email: c.Author.Email,
		}
	}
	return res
}

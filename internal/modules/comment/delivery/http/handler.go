package handler

import (
	"net/http"

	"provenance.com/innovationhub/internal/modules/comment/dto"
	comment "provenance.com/innovationhub/internal/modules/comment/service"
	commonDto "provenance.com/innovationhub/pkg/dto"
	"provenance.com/innovationhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	suggestionID, ok := bindSuggestionID(c)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), suggestionID, response.IsAdmin(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	suggestionID, ok := bindSuggestionID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	created, err := h.service.AddComment(c.Request.Context(), suggestionID, userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment created successfully", "comment": created})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	suggestionID, ok := bindSuggestionID(c)
	if !ok {
		return
	}

	var query dto.DeleteCommentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment ID is required"})
		return
	}

	if err := h.service.RemoveComment(c.Request.Context(), suggestionID, uuid.MustParse(query.CommentID), userID, response.IsAdmin(c)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func bindSuggestionID(c *gin.Context) (uuid.UUID, bool) {
	var req commonDto.IDUri
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return uuid.Nil, false
	}
	return uuid.MustParse(req.ID), true
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"provenance.com/innovationhub/internal/modules/suggestion/dto"
	suggestion "provenance.com/innovationhub/internal/modules/suggestion/service"
	commonDto "provenance.com/innovationhub/pkg/dto"
	"provenance.com/innovationhub/pkg/ratelimiter"
	"provenance.com/innovationhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SuggestionHandler struct {
	service suggestion.SuggestionService
}

func NewSuggestionHandler(service suggestion.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

func (h *SuggestionHandler) CreateSuggestion(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	created, err := h.service.CreateSuggestion(c.Request.Context(), userID, req)
	if err != nil {
		var rateLimitErr *ratelimiter.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Suggestion submitted successfully", "suggestion": created})
}

func (h *SuggestionHandler) GetAllSuggestions(c *gin.Context) {
	var filter dto.SuggestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.service.ListSuggestions(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SuggestionHandler) SearchSuggestions(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.service.SearchSuggestions(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SuggestionHandler) GetSuggestion(c *gin.Context) {
	id, ok := bindSuggestionID(c)
	if !ok {
		return
	}

	found, err := h.service.GetSuggestion(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *SuggestionHandler) UpdateSuggestion(c *gin.Context) {
	id, ok := bindSuggestionID(c)
	if !ok {
		return
	}

	var req dto.UpdateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Suggestion updated successfully", "suggestion": updated})
}

func (h *SuggestionHandler) DeleteSuggestion(c *gin.Context) {
	id, ok := bindSuggestionID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSuggestion(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Suggestion deleted successfully"})
}

func bindSuggestionID(c *gin.Context) (uuid.UUID, bool) {
	var req commonDto.IDUri
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return uuid.Nil, false
	}
	return uuid.MustParse(req.ID), true
}

package handler

import (
	"net/http"

	upvote "provenance.com/innovationhub/internal/modules/upvote/service"
	commonDto "provenance.com/innovationhub/pkg/dto"
	"provenance.com/innovationhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpvoteHandler struct {
	service upvote.UpvoteService
}

func NewUpvoteHandler(service upvote.UpvoteService) *UpvoteHandler {
	return &UpvoteHandler{service: service}
}

func (h *UpvoteHandler) Upvote(c *gin.Context) {
	suggestionID, userID, ok := bindCaller(c)
	if !ok {
		return
	}

	result, err := h.service.Upvote(c.Request.Context(), suggestionID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UpvoteHandler) RemoveUpvote(c *gin.Context) {
	suggestionID, userID, ok := bindCaller(c)
	if !ok {
		return
	}

	result, err := h.service.RemoveUpvote(c.Request.Context(), suggestionID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UpvoteHandler) GetStatus(c *gin.Context) {
	suggestionID, userID, ok := bindCaller(c)
	if !ok {
		return
	}

	status, err := h.service.Status(c.Request.Context(), suggestionID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func bindCaller(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return uuid.Nil, uuid.Nil, false
	}

	var req commonDto.IDUri
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return uuid.Nil, uuid.Nil, false
	}

	return uuid.MustParse(req.ID), userID, true
}

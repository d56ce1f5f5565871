package http

import (
	"net/http"

	statService "provenance.com/innovationhub/internal/modules/stat/service"
	"provenance.com/innovationhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetStatusCounts(c *gin.Context) {
	counts, err := h.statService.StatusCounts(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

func (h *StatHandler) CheckChanges(c *gin.Context) {
	summary, err := h.statService.ChangesSince(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

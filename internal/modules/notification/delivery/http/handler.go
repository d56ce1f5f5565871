package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	notifService "provenance.com/innovationhub/internal/modules/notification/service"
	"provenance.com/innovationhub/internal/observability/metrics"
)

type NotificationHandler struct {
	service  notifService.NotificationService
	upgrader websocket.Upgrader
}

func NewNotificationHandler(service notifService.NotificationService, allowedOrigins string) *NotificationHandler {
	origins := strings.Split(allowedOrigins, ",")
	return &NotificationHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, o := range origins {
					if strings.TrimSpace(o) == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// StreamChanges relays suggestion change events to a dashboard over a websocket.
func (h *NotificationHandler) StreamChanges(c *gin.Context) {
	pubsub, err := h.service.SubscribeChanges(c.Request.Context())
	if err != nil {
		slog.Warn("live changes unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live updates are not available, poll /api/suggestions/check-changes"})
		return
	}
	defer pubsub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("failed to upgrade websocket", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	metrics.IncrementSubscribers()
	defer metrics.DecrementSubscribers()

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				slog.Debug("websocket write failed", slog.String("error", err.Error()))
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

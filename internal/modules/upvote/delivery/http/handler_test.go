package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"provenance.com/innovationhub/internal/mocks"
	upvote "provenance.com/innovationhub/internal/modules/upvote/service"
)

func setupRouter(userID uuid.UUID) (*gin.Engine, *mocks.MockUpvoteRepository, *mocks.MockSuggestionRepository) {
	gin.SetMode(gin.TestMode)
	upvotes := new(mocks.MockUpvoteRepository)
	suggestions := new(mocks.MockSuggestionRepository)
	notifier := new(mocks.MockNotificationService)
	notifier.On("PublishChange", mock.Anything, mock.Anything).Maybe()
	h := NewUpvoteHandler(upvote.NewUpvoteService(upvotes, suggestions, nil, notifier))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Set("role", "user")
		c.Next()
	})
	r.POST("/suggestions/:id/upvote", h.Upvote)
	return r, upvotes, suggestions
}

func TestUpvote_Status(t *testing.T) {
	sid, uid := uuid.New(), uuid.New()

	t.Run("existing upvote is a bad request", func(t *testing.T) {
		r, upvotes, suggestions := setupRouter(uid)
		suggestions.On("Exists", mock.Anything, sid).Return(true, nil)
		upvotes.On("Exists", mock.Anything, sid, uid).Return(true, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/suggestions/"+sid.String()+"/upvote", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		upvotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing suggestion", func(t *testing.T) {
		r, _, suggestions := setupRouter(uid)
		suggestions.On("Exists", mock.Anything, sid).Return(false, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/suggestions/"+sid.String()+"/upvote", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		r, _, suggestions := setupRouter(uid)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/suggestions/42/upvote", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		suggestions.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})
}

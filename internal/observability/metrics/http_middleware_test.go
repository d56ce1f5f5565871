package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/suggestions/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/suggestions/:id", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/suggestions/abc", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/suggestions/:id", "404"))
	assert.Equal(t, before+1, after)
}

func TestObserveUpvote(t *testing.T) {
	before := testutil.ToFloat64(upvoteToggles.WithLabelValues("add", "created"))
	ObserveUpvote("add", "created")
	assert.Equal(t, before+1, testutil.ToFloat64(upvoteToggles.WithLabelValues("add", "created")))
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "innovationhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "innovationhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	suggestionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "innovationhub_suggestion_events_total",
		Help: "Suggestion lifecycle events by kind",
	}, []string{"event"})

	upvoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "innovationhub_upvote_toggles_total",
		Help: "Upvote toggles by action and outcome",
	}, []string{"action", "outcome"})

	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "innovationhub_notifications_total",
		Help: "Admin notification deliveries by channel and result",
	}, []string{"channel", "result"})

	liveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "innovationhub_live_subscribers",
		Help: "Open dashboard change-stream connections",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveSuggestionEvent counts created, updated and deleted suggestions.
func ObserveSuggestionEvent(event string) {
	suggestionEvents.WithLabelValues(event).Inc()
}

func ObserveUpvote(action, outcome string) {
	upvoteToggles.WithLabelValues(action, outcome).Inc()
}

func ObserveNotification(channel, result string) {
	notificationsSent.WithLabelValues(channel, result).Inc()
}

func IncrementSubscribers() {
	liveSubscribers.Inc()
}

func DecrementSubscribers() {
	liveSubscribers.Dec()
}

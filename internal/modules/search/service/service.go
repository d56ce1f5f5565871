package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	meili "github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"provenance.com/innovationhub/internal/entity"
)

const suggestionsIndex = "suggestions"

type SearchService interface {
	Enabled() bool
	IndexSuggestion(suggestion *entity.Suggestion) error
	DeleteSuggestion(id uuid.UUID) error
	// SearchSuggestions returns matching ids in relevance order and the estimated total.
	SearchSuggestions(ctx context.Context, query string, limit int) ([]uuid.UUID, int64, error)
}

type meiliSearchService struct {
	client    meili.ServiceManager
	healthy   atomic.Bool
	sanitizer *bluemonday.Policy
}

// NewSearchService connects to Meilisearch; an empty host yields a disabled service.
func NewSearchService(host, apiKey string) SearchService {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}
	if host == "" {
		slog.Info("MEILISEARCH_HOST not set, suggestion search disabled")
		return s
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	s.client = meili.New(host, meili.WithAPIKey(apiKey))
	if _, err := s.client.Health(); err != nil {
		slog.Warn("meilisearch unavailable", slog.String("host", host), slog.String("error", err.Error()))
		return s
	}
	s.healthy.Store(true)
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	if _, err := s.client.CreateIndex(&meili.IndexConfig{
		Uid:        suggestionsIndex,
		PrimaryKey: "id",
	}); err != nil {
		slog.Debug("create suggestions index (may already exist)", slog.String("error", err.Error()))
	}

	index := s.client.Index(suggestionsIndex)
	filterable := []interface{}{"status", "category_id"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		slog.Warn("failed to update suggestions filterable attributes", slog.String("error", err.Error()))
	}
	searchable := []string{"title", "content", "category"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		slog.Warn("failed to update suggestions searchable attributes", slog.String("error", err.Error()))
	}
}

func (s *meiliSearchService) Enabled() bool {
	return s.client != nil && s.healthy.Load()
}

type suggestionDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Status      string `json:"status"`
	CategoryID  string `json:"category_id"`
	Category    string `json:"category"`
	SubmittedBy string `json:"submitted_by,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *meiliSearchService) toDoc(suggestion *entity.Suggestion) suggestionDoc {
	doc := suggestionDoc{
		ID:        suggestion.ID.String(),
		Title:     s.cleanText(suggestion.Title),
		Content:   s.cleanText(suggestion.Content),
		Status:    suggestion.Status,
		CreatedAt: suggestion.CreatedAt.Unix(),
	}
	if suggestion.CategoryID != nil {
		doc.CategoryID = suggestion.CategoryID.String()
	}
	if suggestion.Category != nil {
		doc.Category = suggestion.Category.Name
	}
	if !suggestion.IsAnonymous && suggestion.SubmittedBy != nil {
		doc.SubmittedBy = suggestion.SubmittedBy.Name
	}
	return doc
}

func (s *meiliSearchService) cleanText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *meiliSearchService) IndexSuggestion(suggestion *entity.Suggestion) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.client.Index(suggestionsIndex).AddDocuments([]suggestionDoc{s.toDoc(suggestion)}, nil)
	return err
}

func (s *meiliSearchService) DeleteSuggestion(id uuid.UUID) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.client.Index(suggestionsIndex).DeleteDocument(id.String(), nil)
	return err
}

func (s *meiliSearchService) SearchSuggestions(ctx context.Context, query string, limit int) ([]uuid.UUID, int64, error) {
	if !s.Enabled() || strings.TrimSpace(query) == "" {
		return []uuid.UUID{}, 0, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	resp, err := s.client.MultiSearch(&meili.MultiSearchRequest{
		Queries: []*meili.SearchRequest{{
			IndexUID: suggestionsIndex,
			Query:    query,
			Limit:    int64(limit),
		}},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	ids := []uuid.UUID{}
	var total int64
	for _, result := range resp.Results {
		total += result.EstimatedTotalHits
		for _, hit := range result.Hits {
			if id, ok := hitID(hit); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, total, nil
}

func hitID(hit meili.Hit) (uuid.UUID, bool) {
	raw, ok := hit["id"]
	if !ok {
		return uuid.Nil, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

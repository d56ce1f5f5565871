package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	meili "github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provenance.com/innovationhub/internal/entity"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	svc := NewSearchService("", "")

	assert.False(t, svc.Enabled())
	assert.NoError(t, svc.IndexSuggestion(&entity.Suggestion{ID: uuid.New()}))
	assert.NoError(t, svc.DeleteSuggestion(uuid.New()))

	ids, total, err := svc.SearchSuggestions(context.Background(), "login", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Zero(t, total)
}

func TestToDoc_AnonymousSubmitterNotIndexed(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}
	submitter := &entity.User{Name: "Grace Hopper"}

	anon := s.toDoc(&entity.Suggestion{ID: uuid.New(), Title: "A", IsAnonymous: true, SubmittedBy: submitter})
	named := s.toDoc(&entity.Suggestion{ID: uuid.New(), Title: "B", IsAnonymous: false, SubmittedBy: submitter})

	assert.Empty(t, anon.SubmittedBy)
	assert.Equal(t, "Grace Hopper", named.SubmittedBy)
}

func TestCleanText_StripsMarkup(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}

	assert.Equal(t, "Fix the login page", s.cleanText("<p>Fix the</p><b>login</b>   page"))
	assert.Equal(t, "Tom & Jerry", s.cleanText("Tom &amp; Jerry"))
}

func TestHitID(t *testing.T) {
	id := uuid.New()
	raw, _ := json.Marshal(id.String())

	got, ok := hitID(meili.Hit{"id": raw})
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = hitID(meili.Hit{"title": raw})
	assert.False(t, ok)
}

package service

import (
	"context"

	"github.com/google/uuid"

	"provenance.com/innovationhub/internal/entity"
	"provenance.com/innovationhub/internal/modules/stat/dto"
	suggestionRepo "provenance.com/innovationhub/internal/modules/suggestion/repository"
	upvoteRepo "provenance.com/innovationhub/internal/modules/upvote/repository"
)

type StatService interface {
	StatusCounts(ctx context.Context) (*dto.StatusCounts, error)
	// UpvoteCounts resolves counts for many suggestions with at most one database query.
	UpvoteCounts(ctx context.Context, suggestionIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ChangesSince(ctx context.Context) (*dto.ChangesSummary, error)
}

type statService struct {
	suggestionRepo suggestionRepo.SuggestionRepository
	upvoteRepo     upvoteRepo.UpvoteRepository
	countCache     *upvoteRepo.CountCache
}

func NewStatService(suggestionRepo suggestionRepo.SuggestionRepository, upvoteRepo upvoteRepo.UpvoteRepository, countCache *upvoteRepo.CountCache) StatService {
	return &statService{
		suggestionRepo: suggestionRepo,
		upvoteRepo:     upvoteRepo,
		countCache:     countCache,
	}
}

func (s *statService) StatusCounts(ctx context.Context) (*dto.StatusCounts, error) {
	grouped, err := s.suggestionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	counts := &dto.StatusCounts{}
	for status, n := range grouped {
		counts.Total += n
		switch status {
		case entity.StatusPending:
			counts.Pending = n
		case entity.StatusApproved:
			counts.Approved = n
		case entity.StatusRejected:
			counts.Rejected = n
		case entity.StatusInProgress:
			counts.InProgress = n
		case entity.StatusCompleted:
			counts.Completed = n
		}
	}
	return counts, nil
}

func (s *statService) UpvoteCounts(ctx context.Context, suggestionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	ids := dedupe(suggestionIDs)
	counts, misses, gens := s.countCache.GetMany(ctx, ids)
	if len(misses) == 0 {
		return counts, nil
	}

	fromDB, err := s.upvoteRepo.CountBySuggestionIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, n := range fromDB {
		counts[id] = n
	}
	s.countCache.SetMany(ctx, fromDB, gens)

	return counts, nil
}

func (s *statService) ChangesSince(ctx context.Context) (*dto.ChangesSummary, error) {
	latest, total, err := s.suggestionRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.ChangesSummary{Count: total}
	if latest != nil {
		id := latest.ID
		createdAt := latest.CreatedAt
		summary.MostRecentID = &id
		summary.MostRecentCreatedAt = &createdAt
	}
	return summary, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

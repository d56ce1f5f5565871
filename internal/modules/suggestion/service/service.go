package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"provenance.com/innovationhub/internal/entity"
	notifDto "provenance.com/innovationhub/internal/modules/notification/dto"
	"provenance.com/innovationhub/internal/observability/metrics"
	"provenance.com/innovationhub/pkg/apperror"
	"provenance.com/innovationhub/pkg/database"
	commonDto "provenance.com/innovationhub/pkg/dto"

	categoryRepo "provenance.com/innovationhub/internal/modules/category/repository"
	commentRepo "provenance.com/innovationhub/internal/modules/comment/repository"
	"provenance.com/innovationhub/internal/modules/suggestion/dto"
	repo "provenance.com/innovationhub/internal/modules/suggestion/repository"
	upvoteRepo "provenance.com/innovationhub/internal/modules/upvote/repository"
	userRepo "provenance.com/innovationhub/internal/modules/user/repository"

	notifService "provenance.com/innovationhub/internal/modules/notification/service"
	search "provenance.com/innovationhub/internal/modules/search/service"
	stat "provenance.com/innovationhub/internal/modules/stat/service"
)

type SuggestionService interface {
	CreateSuggestion(ctx context.Context, userID uuid.UUID, req dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error)
	GetSuggestion(ctx context.Context, id uuid.UUID) (*dto.SuggestionResponse, error)
	ListSuggestions(ctx context.Context, filter dto.SuggestionFilter) (*dto.PaginatedSuggestionResponse, error)
	SearchSuggestions(ctx context.Context, query dto.SearchQuery) (*dto.SearchSuggestionResponse, error)
	// UpdateStatus replaces status and/or admin notes; any status may follow any other.
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateSuggestionRequest) (*dto.SuggestionResponse, error)
	// DeleteSuggestion removes the suggestion, then its upvotes and comments, before returning.
	DeleteSuggestion(ctx context.Context, id uuid.UUID) error
}

type Config struct {
	CreateCooldown time.Duration
	MaxPageSize    int
}

type suggestionService struct {
	suggestionRepo      repo.SuggestionRepository
	categoryRepo        categoryRepo.CategoryRepository
	userRepo            userRepo.UserRepository
	upvoteRepo          upvoteRepo.UpvoteRepository
	commentRepo         commentRepo.CommentRepository
	countCache          *upvoteRepo.CountCache
	statService         stat.StatService
	searchService       search.SearchService
	notificationService notifService.NotificationService
	redisClient         *redis.Client
	config              Config
}

func NewSuggestionService(suggestionRepo repo.SuggestionRepository, categoryRepo categoryRepo.CategoryRepository, userRepo userRepo.UserRepository, upvoteRepo upvoteRepo.UpvoteRepository, commentRepo commentRepo.CommentRepository, countCache *upvoteRepo.CountCache, statService stat.StatService, searchService search.SearchService, notificationService notifService.NotificationService, redisClient *redis.Client, config Config) SuggestionService {
	if config.MaxPageSize < 1 {
		config.MaxPageSize = 50
	}
	return &suggestionService{
		suggestionRepo:      suggestionRepo,
		categoryRepo:        categoryRepo,
		userRepo:            userRepo,
		upvoteRepo:          upvoteRepo,
		commentRepo:         commentRepo,
		countCache:          countCache,
		statService:         statService,
		searchService:       searchService,
		notificationService: notificationService,
		redisClient:         redisClient,
		config:              config,
	}
}

func (s *suggestionService) CreateSuggestion(ctx context.Context, userID uuid.UUID, req dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("title and content are required: %w", apperror.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > dto.MaxTitleLength {
		return nil, fmt.Errorf("title must be at most %d characters: %w", dto.MaxTitleLength, apperror.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > dto.MaxContentLength {
		return nil, fmt.Errorf("content must be at most %d characters: %w", dto.MaxContentLength, apperror.ErrInvalidInput)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", apperror.ErrBadRequest)
	}
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("invalid category id: %w", apperror.ErrBadRequest)
		}
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	cleanup, err := s.checkCreateRateLimit(ctx, userID)
	if err != nil {
		return nil, err
	}

	isAnonymous := true
	if req.IsAnonymous != nil {
		isAnonymous = *req.IsAnonymous
	}

	suggestion := &entity.Suggestion{
		Title:         title,
		Content:       content,
		CategoryID:    &category.ID,
		Status:        entity.StatusPending,
		IsAnonymous:   isAnonymous,
		SubmittedByID: &author.ID,
	}
	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		cleanup()
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("invalid category id: %w", apperror.ErrBadRequest)
		}
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}
	suggestion.Category = category
	suggestion.SubmittedBy = author

	metrics.ObserveSuggestionEvent(notifDto.EventSuggestionCreated)
	s.indexSuggestion(suggestion)
	s.publish(ctx, notifDto.ChangeEvent{
		Type:         notifDto.EventSuggestionCreated,
		SuggestionID: suggestion.ID,
		Status:       suggestion.Status,
	})
	s.notifyAdmin(suggestion)

	res := dto.NewSuggestionResponse(suggestion, 0)
	return &res, nil
}

func (s *suggestionService) GetSuggestion(ctx context.Context, id uuid.UUID) (*dto.SuggestionResponse, error) {
	suggestion, err := s.suggestionRepo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("suggestion not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	counts, err := s.statService.UpvoteCounts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	res := dto.NewSuggestionResponse(suggestion, counts[id])
	return &res, nil
}

func (s *suggestionService) ListSuggestions(ctx context.Context, filter dto.SuggestionFilter) (*dto.PaginatedSuggestionResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := s.clampLimit(filter.Limit, dto.DefaultPageSize)

	repoFilter := repo.Filter{Status: strings.TrimSpace(filter.Status)}
	if raw := strings.TrimSpace(filter.Category); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", apperror.ErrBadRequest)
		}
		repoFilter.CategoryID = &categoryID
	}

	suggestions, total, err := s.suggestionRepo.FindAll(ctx, repoFilter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.toResponses(ctx, suggestions)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedSuggestionResponse{
		Suggestions: items,
		Pagination:  commonDto.NewPaginationMeta(page, limit, total),
	}, nil
}

// SearchSuggestions keeps the ranking order of the search index and drops hits already deleted from the database.
func (s *suggestionService) SearchSuggestions(ctx context.Context, query dto.SearchQuery) (*dto.SearchSuggestionResponse, error) {
	q := strings.TrimSpace(query.Q)
	if q == "" {
		return nil, fmt.Errorf("search query is required: %w", apperror.ErrBadRequest)
	}
	res := &dto.SearchSuggestionResponse{Query: q, Suggestions: []dto.SuggestionResponse{}}
	if s.searchService == nil || !s.searchService.Enabled() {
		return res, nil
	}

	ids, total, err := s.searchService.SearchSuggestions(ctx, q, s.clampLimit(query.Limit, 20))
	if err != nil {
		return nil, fmt.Errorf("failed to search suggestions: %w", err)
	}
	res.Total = total
	if len(ids) == 0 {
		return res, nil
	}

	found, err := s.suggestionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Suggestion, len(found))
	for _, suggestion := range found {
		byID[suggestion.ID] = suggestion
	}
	ordered := make([]*entity.Suggestion, 0, len(found))
	for _, id := range ids {
		if suggestion, ok := byID[id]; ok {
			ordered = append(ordered, suggestion)
		}
	}

	res.Suggestions, err = s.toResponses(ctx, ordered)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *suggestionService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateSuggestionRequest) (*dto.SuggestionResponse, error) {
	fields := map[string]interface{}{}
	if req.Status != nil {
		if !slices.Contains(entity.SuggestionStatuses, *req.Status) {
			return nil, fmt.Errorf("status must be one of %s: %w", strings.Join(entity.SuggestionStatuses, ", "), apperror.ErrInvalidInput)
		}
		fields["status"] = *req.Status
	}
	if req.AdminNotes != nil {
		notes := strings.TrimSpace(*req.AdminNotes)
		if utf8.RuneCountInString(notes) > dto.MaxAdminNotesLength {
			return nil, fmt.Errorf("admin notes must be at most %d characters: %w", dto.MaxAdminNotesLength, apperror.ErrInvalidInput)
		}
		fields["admin_notes"] = notes
	}

	exists, err := s.suggestionRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("suggestion not found or has been deleted: %w", apperror.ErrNotFound)
	}

	fields["updated_at"] = time.Now()
	affected, err := s.suggestionRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update suggestion: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("suggestion was deleted during update: %w", apperror.ErrGone)
	}

	suggestion, err := s.suggestionRepo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("suggestion was deleted during update: %w", apperror.ErrGone)
		}
		return nil, err
	}

	counts, err := s.statService.UpvoteCounts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	metrics.ObserveSuggestionEvent(notifDto.EventSuggestionUpdated)
	s.indexSuggestion(suggestion)
	s.publish(ctx, notifDto.ChangeEvent{
		Type:         notifDto.EventSuggestionUpdated,
		SuggestionID: id,
		Status:       suggestion.Status,
	})

	res := dto.NewSuggestionResponse(suggestion, counts[id])
	return &res, nil
}

func (s *suggestionService) DeleteSuggestion(ctx context.Context, id uuid.UUID) error {
	exists, err := s.suggestionRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("suggestion not found or already deleted: %w", apperror.ErrNotFound)
	}

	affected, err := s.suggestionRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("suggestion was already deleted by another user: %w", apperror.ErrGone)
	}

	if _, err := s.upvoteRepo.DeleteBySuggestion(ctx, id); err != nil {
		return fmt.Errorf("failed to delete upvotes: %w", err)
	}
	if _, err := s.commentRepo.DeleteBySuggestion(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	s.countCache.Invalidate(ctx, id)

	metrics.ObserveSuggestionEvent(notifDto.EventSuggestionDeleted)
	if s.searchService != nil && s.searchService.Enabled() {
		if err := s.searchService.DeleteSuggestion(id); err != nil {
			slog.Warn("failed to remove suggestion from search index",
				slog.String("suggestion_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	s.publish(ctx, notifDto.ChangeEvent{
		Type:         notifDto.EventSuggestionDeleted,
		SuggestionID: id,
	})
	return nil
}

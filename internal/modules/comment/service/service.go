package comment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"provenance.com/innovationhub/internal/entity"
	"provenance.com/innovationhub/internal/modules/comment/dto"
	commentRepo "provenance.com/innovationhub/internal/modules/comment/repository"
	suggestionRepo "provenance.com/innovationhub/internal/modules/suggestion/repository"
	userRepo "provenance.com/innovationhub/internal/modules/user/repository"
	"provenance.com/innovationhub/pkg/apperror"
	"provenance.com/innovationhub/pkg/database"
)

type CommentService interface {
	// AddComment does not check the caller's role; routes gate it to admins.
	AddComment(ctx context.Context, suggestionID, authorID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, suggestionID uuid.UUID, callerIsAdmin bool) ([]dto.CommentResponse, error)
	// RemoveComment only matches comments that belong to suggestionID.
	RemoveComment(ctx context.Context, suggestionID, commentID, callerID uuid.UUID, callerIsAdmin bool) error
}

type commentService struct {
	repo           commentRepo.CommentRepository
	suggestionRepo suggestionRepo.SuggestionRepository
	userRepo       userRepo.UserRepository
}

func NewCommentService(repo commentRepo.CommentRepository, suggestionRepo suggestionRepo.SuggestionRepository, userRepo userRepo.UserRepository) CommentService {
	return &commentService{
		repo:           repo,
		suggestionRepo: suggestionRepo,
		userRepo:       userRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, suggestionID, authorID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("comment is required: %w", apperror.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > dto.MaxContentLength {
		return nil, fmt.Errorf("comment too long: %w", apperror.ErrInvalidInput)
	}

	exists, err := s.suggestionRepo.Exists(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("suggestion not found: %w", apperror.ErrNotFound)
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	comment := &entity.Comment{
		SuggestionID: suggestionID,
		AuthorID:     author.ID,
		Content:      content,
		IsInternal:   req.IsInternal,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("suggestion not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	comment.Author = author

	res := dto.NewCommentResponse(comment)
	return &res, nil
}

func (s *commentService) ListComments(ctx context.Context, suggestionID uuid.UUID, callerIsAdmin bool) ([]dto.CommentResponse, error) {
	comments, err := s.repo.FindBySuggestion(ctx, suggestionID, callerIsAdmin)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		// Internal comments never reach non-admin readers.
		if c.IsInternal && !callerIsAdmin {
			continue
		}
		responses = append(responses, dto.NewCommentResponse(c))
	}
	return responses, nil
}

func (s *commentService) RemoveComment(ctx context.Context, suggestionID, commentID, callerID uuid.UUID, callerIsAdmin bool) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	if comment.SuggestionID != suggestionID {
		return fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
	}

	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if !callerIsAdmin && comment.AuthorID != caller.ID {
		return fmt.Errorf("you can only delete your own comments: %w", apperror.ErrForbidden)
	}

	affected, err := s.repo.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
	}
	return nil
}

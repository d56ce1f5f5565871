package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"provenance.com/innovationhub/internal/entity"
	"provenance.com/innovationhub/internal/modules/user/repository"
	"provenance.com/innovationhub/pkg/apperror"
	"provenance.com/innovationhub/pkg/database"
	"github.com/google/uuid"
)

type UserService interface {
	// EnsureUser resolves the user behind an authenticated identity, creating it on first sign-in.
	EnsureUser(ctx context.Context, email, name string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	PromoteAdmin(ctx context.Context, email, name string) (*entity.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) EnsureUser(ctx context.Context, email, name string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("identity has no email: %w", apperror.ErrUnauthorized)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Unknown User"
	}
	user = &entity.User{
		Email: email,
		Name:  strings.TrimSpace(name),
		Role:  entity.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Two first requests from the same identity can race; the loser reads the winner's row.
		if database.IsUniqueViolation(err) {
			return s.repo.FindByEmail(ctx, email)
		}
		return nil, err
	}

	slog.Info("user created on first sign-in", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) PromoteAdmin(ctx context.Context, email, name string) (*entity.User, error) {
	user, err := s.EnsureUser(ctx, email, name)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}
	if err := s.repo.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = entity.RoleAdmin
	return user, nil
}

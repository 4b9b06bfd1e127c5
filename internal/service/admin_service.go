package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/wildhaven/cms-auth/internal/domain"
	"github.com/wildhaven/cms-auth/internal/repository"
	apperrors "github.com/wildhaven/cms-auth/pkg/util/errorutil"
)

// UserUpdate carries the administrative mutations for an account.
// Nil fields are left untouched.
type UserUpdate struct {
	Role          *domain.Role
	IsActive      *bool
	EmailVerified *bool
}

// AdminService implements administrative account management. Accounts are
// never deleted; deactivation via IsActive is the only destructive
// lifecycle event.
type AdminService struct {
	users repository.UserRepository
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository) *AdminService {
	return &AdminService{users: users}
}

// ListUsers returns all accounts.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUser applies role and flag changes to an account. A role change
// does not invalidate tokens already issued with the previous role.
func (s *AdminService) UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *update.Role})
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.EmailVerified != nil {
		user.EmailVerified = *update.EmailVerified
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

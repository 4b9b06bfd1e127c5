package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/wildhaven/cms-auth/internal/auth"
	"github.com/wildhaven/cms-auth/internal/config"
	"github.com/wildhaven/cms-auth/internal/domain"
	"github.com/wildhaven/cms-auth/internal/repository"
	apperrors "github.com/wildhaven/cms-auth/pkg/util/errorutil"
)

// AuthService coordinates registration, login, and session lifecycle.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// NormalizeEmail lowercases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with role user. The existence check and
// the insert are two separate calls; concurrent registrations for the
// same email can both pass the check and the unique index surfaces the
// loser as a storage error rather than ALREADY_EXISTS.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*domain.User, *auth.TokenPair, error) {
	email = NormalizeEmail(email)

	if result := auth.ValidateStrength(password); !result.Valid {
		return nil, nil, apperrors.NewValidationError(result.Reason, nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewAlreadyExists("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:         email,
		PasswordHash:  hash,
		FullName:      fullName,
		Role:          domain.RoleUser,
		EmailVerified: false,
		IsActive:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokenMgr.IssuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates by email and password. Unknown email, wrong
// password, and deactivated accounts all return the same generic
// unauthorized error so the response never reveals which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *auth.TokenPair, error) {
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokenMgr.IssuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. Tokens
// are stateless, so the exchange verifies the refresh JWT and re-reads
// the user row; the new claims pick up the current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokenMgr.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid refresh token")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	return s.tokenMgr.IssuePair(user)
}

// CurrentUser re-fetches the account for the given id so role and flag
// changes made after token issuance are visible.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

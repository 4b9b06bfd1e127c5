package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wildhaven/cms-auth/internal/api/dto"
	"github.com/wildhaven/cms-auth/internal/auth"
	"github.com/wildhaven/cms-auth/internal/events"
	"github.com/wildhaven/cms-auth/internal/ratelimit"
	"github.com/wildhaven/cms-auth/internal/service"
	apperrors "github.com/wildhaven/cms-auth/pkg/util/errorutil"
)

// AttemptLimiter clears a client's throttle window. Satisfied by
// ratelimit.Limiter.
type AttemptLimiter interface {
	Reset(ctx context.Context, ip, purpose string)
}

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	middleware    *auth.AuthMiddleware
	dispatcher    events.Dispatcher
	limiter       AttemptLimiter
	secureCookies bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, middleware *auth.AuthMiddleware, dispatcher events.Dispatcher, limiter AttemptLimiter, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          authService,
		middleware:    middleware,
		dispatcher:    dispatcher,
		limiter:       limiter,
		secureCookies: secureCookies,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, pair, err := h.auth.Register(c.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	h.publish(c, events.EventUserRegistered, &user.ID, user.Email)
	auth.SetSessionCookies(c, pair, h.secureCookies)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":   dto.NewUserResponse(user),
			"tokens": dto.NewTokenResponse(pair),
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		// Only credential rejections go to the audit trail; storage and
		// other internal failures are not login attempts.
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.HTTPStatus == http.StatusUnauthorized {
			h.publish(c, events.EventUserLoginFailed, nil, service.NormalizeEmail(req.Email))
		}
		return err
	}

	h.publish(c, events.EventUserLoggedIn, &user.ID, user.Email)
	if h.limiter != nil {
		h.limiter.Reset(c.Context(), c.IP(), ratelimit.PurposeLogin)
	}
	auth.SetSessionCookies(c, pair, h.secureCookies)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":   dto.NewUserResponse(user),
			"tokens": dto.NewTokenResponse(pair),
		},
	})
}

// Refresh handles POST /api/auth/refresh. The refresh token is taken
// from the body, falling back to the refresh_token cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	_ = c.BodyParser(&req)

	token := req.RefreshToken
	if token == "" {
		token = c.Cookies(auth.CookieRefreshToken)
	}
	if token == "" {
		return apperrors.NewUnauthorized("refresh token required")
	}

	pair, err := h.auth.Refresh(c.Context(), token)
	if err != nil {
		return err
	}

	auth.SetSessionCookies(c, pair, h.secureCookies)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"tokens": dto.NewTokenResponse(pair),
		},
	})
}

// Me handles GET /api/auth/me. The user row is re-fetched so the
// response reflects current role and flags, not the token claims.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.auth.CurrentUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
		},
	})
}

// Logout handles POST /api/auth/logout. Best-effort: the audit entry is
// written only when a valid token identifies the caller, but the cookies
// are cleared and 200 returned either way.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if principal := h.middleware.VerifyAuth(c); principal != nil {
		h.publish(c, events.EventUserLoggedOut, &principal.UserID, principal.Email)
	}

	auth.ClearSessionCookies(c, h.secureCookies)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"message": "logged out",
		},
	})
}

func (h *AuthHandler) publish(c *fiber.Ctx, eventType events.EventType, userID *string, email string) {
	if h.dispatcher == nil {
		return
	}
	_ = h.dispatcher.Publish(c.Context(), events.Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: userID,
		Email:  email,
		Request: events.Request{
			IPAddress: c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		},
		Timestamp: time.Now(),
	})
}

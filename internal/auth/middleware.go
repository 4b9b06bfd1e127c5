package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wildhaven/cms-auth/internal/domain"
	apperrors "github.com/wildhaven/cms-auth/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the identity resolved from a verified access token.
// It mirrors the claims at issuance time; handlers that need current
// role or flags re-fetch the user row.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
}

// TokenVerifier validates a bearer token of the expected type. Satisfied
// by TokenManager; the middleware depends on this so the token scheme
// stays swappable.
type TokenVerifier interface {
	Verify(tokenStr string, expected TokenType) (*Claims, error)
}

// AuthMiddleware validates access tokens and injects the caller identity.
type AuthMiddleware struct {
	tokens TokenVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. The token is read
// from the access_token cookie or the Authorization header; missing,
// malformed, and expired tokens all short-circuit with 401.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal := m.resolve(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// VerifyAuth resolves the caller identity without failing the request.
// Returns nil when no valid access token is present; used by call sites
// like logout that must succeed regardless of auth state.
func (m *AuthMiddleware) VerifyAuth(c *fiber.Ctx) *Principal {
	return m.resolve(c)
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) *Principal {
	tokenStr := c.Cookies(CookieAccessToken)
	if tokenStr == "" {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
	}
	if tokenStr == "" {
		return nil
	}

	claims, err := m.tokens.Verify(tokenStr, TokenTypeAccess)
	if err != nil {
		return nil
	}
	return &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
}

// RequireRole ensures the principal carries one of the allowed roles.
// Must run after Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildhaven/cms-auth/internal/domain"
	apperrors "github.com/wildhaven/cms-auth/pkg/util/errorutil"
)

func newProtectedApp(t *testing.T, tm *TokenManager, extra ...fiber.Handler) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	mw := NewAuthMiddleware(tm)
	handlers := append([]fiber.Handler{mw.Handle}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"user_id": principal.UserID, "role": principal.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	app := newProtectedApp(t, tm)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	app := newProtectedApp(t, tm)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: pair.AccessToken})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ValidBearerHeader(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	app := newProtectedApp(t, tm)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	tm.accessTTL = -time.Second
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	app := newProtectedApp(t, tm)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RefreshTokenRejectedAsAccess(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	app := newProtectedApp(t, tm)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.RefreshToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser()) // role expert
	require.NoError(t, err)

	adminOnly := newProtectedApp(t, tm, RequireRole(domain.RoleAdmin))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)

	resp, err := adminOnly.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	expertAllowed := newProtectedApp(t, tm, RequireRole(domain.RoleExpert, domain.RoleAdmin))
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)

	resp, err = expertAllowed.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestVerifyAuth_NonThrowing(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	mw := NewAuthMiddleware(tm)
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		principal := mw.VerifyAuth(c)
		if principal == nil {
			return c.JSON(fiber.Map{"identified": false})
		}
		return c.JSON(fiber.Map{"identified": true})
	})

	// No token: still 200.
	resp, err := app.Test(httptest.NewRequest("POST", "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Garbage token: still 200.
	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Valid token: still 200.
	req = httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

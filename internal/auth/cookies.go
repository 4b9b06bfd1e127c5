package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Session cookie names. The handlers own all three; middleware only ever
// reads CookieAccessToken.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	CookieUserSession  = "user_session"
)

// SetSessionCookies writes the cookie set for a freshly issued token pair.
// All cookies are http-only with SameSite=Lax; Secure is set outside
// development.
func SetSessionCookies(c *fiber.Ctx, pair *TokenPair, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieAccessToken,
		Value:    pair.AccessToken,
		Expires:  pair.AccessExpiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     CookieRefreshToken,
		Value:    pair.RefreshToken,
		Expires:  pair.RefreshExpiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     CookieUserSession,
		Value:    "1",
		Expires:  pair.RefreshExpiresAt,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearSessionCookies expires the full cookie set. Called unconditionally
// on logout regardless of auth state.
func ClearSessionCookies(c *fiber.Ctx, secure bool) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{CookieAccessToken, CookieRefreshToken, CookieUserSession} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: name != CookieUserSession,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
	}
}

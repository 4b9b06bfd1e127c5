package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildhaven/cms-auth/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "7b8a9f4e-0000-0000-0000-000000000001",
		Email: "a@b.com",
		Role:  domain.RoleExpert,
	}
}

func TestIssuePairAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := tm.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "7b8a9f4e-0000-0000-0000-000000000001", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, domain.RoleExpert, claims.Role)

	refreshClaims, err := tm.Verify(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, refreshClaims.UserID)
}

func TestVerify_RejectsWrongTokenType(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	_, err = tm.Verify(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Verify(pair.AccessToken, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	tm.accessTTL = -time.Second
	pair, err := tm.IssuePair(testUser())
	require.NoError(t, err)

	_, err = tm.Verify(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", time.Minute, time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Minute, time.Hour)

	pair, err := issuer.IssuePair(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	_, err := tm.Verify("not.a.jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_ReflectRoleAtIssuance(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	user := testUser()
	pair, err := tm.IssuePair(user)
	require.NoError(t, err)

	// Changing the role afterwards does not touch the outstanding token.
	user.Role = domain.RoleAdmin

	claims, err := tm.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleExpert, claims.Role)
}

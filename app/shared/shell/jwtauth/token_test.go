package jwtauth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
)

const secret = "0123456789abcdef0123456789abcdef"

func fixedClock(at time.Time) jwtauth.Option {
	return jwtauth.WithClock(func() time.Time { return at })
}

func Test_Issuer_IssueAndVerify(t *testing.T) {
	// arrange
	now := time.Now()
	issuer, err := jwtauth.NewIssuer(secret, "library", time.Hour, fixedClock(now))
	require.NoError(t, err)

	// act
	token, err := issuer.Issue(42, "librarian")
	require.NoError(t, err)
	claims, err := issuer.Verify(token.AccessToken)

	// assert
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "librarian", claims.Username)
	assert.Equal(t, "library", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"library"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(time.Hour), token.ExpiresAt, time.Second)
}

func Test_Issuer_Verify_RejectsExpiredToken(t *testing.T) {
	// arrange
	issuedAt := time.Now().Add(-2 * time.Hour)
	past, err := jwtauth.NewIssuer(secret, "library", time.Hour, fixedClock(issuedAt))
	require.NoError(t, err)
	token, err := past.Issue(1, "librarian")
	require.NoError(t, err)

	present, err := jwtauth.NewIssuer(secret, "library", time.Hour)
	require.NoError(t, err)

	// act
	_, err = present.Verify(token.AccessToken)

	// assert
	assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func Test_Issuer_Verify_RejectsForeignTokens(t *testing.T) {
	// arrange
	issuer, err := jwtauth.NewIssuer(secret, "library", time.Hour)
	require.NoError(t, err)
	otherKey, err := jwtauth.NewIssuer("another-secret-another-secret-xx", "library", time.Hour)
	require.NoError(t, err)
	otherIssuer, err := jwtauth.NewIssuer(secret, "someone-else", time.Hour)
	require.NoError(t, err)

	fromOtherKey, err := otherKey.Issue(1, "x")
	require.NoError(t, err)
	fromOtherIssuer, err := otherIssuer.Issue(1, "x")
	require.NoError(t, err)

	// act / assert
	_, err = issuer.Verify(fromOtherKey.AccessToken)
	assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)

	_, err = issuer.Verify(fromOtherIssuer.AccessToken)
	assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)
}

func Test_NewIssuer_InvalidConfig(t *testing.T) {
	_, err := jwtauth.NewIssuer("", "library", time.Hour)
	assert.ErrorIs(t, err, jwtauth.ErrEmptySecret)

	_, err = jwtauth.NewIssuer(secret, "library", 0)
	assert.ErrorIs(t, err, jwtauth.ErrInvalidTTL)
}

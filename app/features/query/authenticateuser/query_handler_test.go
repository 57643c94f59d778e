package authenticateuser_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/features/query/authenticateuser"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

const secret = "0123456789abcdef0123456789abcdef"

func newIssuer(t *testing.T) jwtauth.Issuer {
	t.Helper()

	issuer, err := jwtauth.NewIssuer(secret, "library", time.Hour)
	require.NoError(t, err)

	return issuer
}

func Test_QueryHandler_Handle_Success(t *testing.T) {
	// setup
	store := NewStore(t)
	issuer := newIssuer(t)
	handler := authenticateuser.NewQueryHandler(store, issuer)

	// arrange
	user := GivenUser(t, store, "correct horse")

	// act
	result, err := handler.Handle(context.Background(), authenticateuser.BuildQuery(user.Username, "correct horse"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Authentication successful!", result.Message)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := issuer.Verify(result.Token.AccessToken)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func Test_QueryHandler_Handle_Error_InvalidCredentials(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := authenticateuser.NewQueryHandler(store, newIssuer(t))
	user := GivenUser(t, store, "correct horse")

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: user.Username, password: "battery staple"},
		{name: "unknown user", username: UniqueName("nobody"), password: "correct horse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := handler.Handle(context.Background(), authenticateuser.BuildQuery(tc.username, tc.password))

			// assert
			appErr, ok := core.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, core.KindUnauthorized, appErr.Kind)
			assert.Equal(t, "Invalid username or password", appErr.Message)
		})
	}
}

func Test_QueryHandler_Handle_Error_MissingFields(t *testing.T) {
	// setup
	handler := authenticateuser.NewQueryHandler(NewStore(t), newIssuer(t))

	// act
	_, err := handler.Handle(context.Background(), authenticateuser.BuildQuery("", ""))

	// assert
	assert.True(t, core.IsKind(err, core.KindValidation))
}

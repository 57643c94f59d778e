package registeruser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-management-api/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

const secret = "0123456789abcdef0123456789abcdef"

var fakeClock = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

func newIssuer(t *testing.T) jwtauth.Issuer {
	t.Helper()

	issuer, err := jwtauth.NewIssuer(secret, "library", time.Hour)
	require.NoError(t, err)

	return issuer
}

type failingIssuer struct{}

func (failingIssuer) Issue(int64, string) (jwtauth.Token, error) {
	return jwtauth.Token{}, errors.New("signing failed")
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	issuer := newIssuer(t)
	handler := registeruser.NewCommandHandler(store, issuer, registeruser.WithHashCost(bcrypt.MinCost))
	username := UniqueName("librarian")

	// act
	result, err := handler.Handle(ctx, registeruser.BuildCommand("  "+username+" ", "s3cret", fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "User Created Successfully!", result.Value.Message)
	assert.NotZero(t, result.Value.UserID)
	assert.Equal(t, username, result.Value.User.Username)
	assert.Equal(t, fakeClock, result.Value.User.CreatedAt)

	claims, err := issuer.Verify(result.Value.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, username, claims.Username)

	stored, err := store.UserByUsername(ctx, username)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func Test_CommandHandler_Handle_Error_UsernameTaken(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := registeruser.NewCommandHandler(store, newIssuer(t), registeruser.WithHashCost(bcrypt.MinCost))

	// arrange
	existing := GivenUser(t, store, "first")

	// act
	_, err := handler.Handle(context.Background(), registeruser.BuildCommand(existing.Username, "second", fakeClock))

	// assert
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindConflict))
	assert.Contains(t, err.Error(), "User '"+existing.Username+"' already exists")
}

func Test_CommandHandler_Handle_Error_MissingFields(t *testing.T) {
	// setup
	handler := registeruser.NewCommandHandler(NewStore(t), newIssuer(t))

	// act
	_, err := handler.Handle(context.Background(), registeruser.BuildCommand("   ", "", fakeClock))

	// assert
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, core.KindValidation, appErr.Kind)
	assert.Equal(t, []string{"Username is required"}, appErr.Fields["username"])
	assert.Equal(t, []string{"Password is required"}, appErr.Fields["password"])
}

func Test_CommandHandler_Handle_Error_TokenSigningFails(t *testing.T) {
	// setup
	handler := registeruser.NewCommandHandler(NewStore(t), failingIssuer{}, registeruser.WithHashCost(bcrypt.MinCost))

	// act
	_, err := handler.Handle(context.Background(), registeruser.BuildCommand(UniqueName("user"), "pw", fakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindInternal))
}

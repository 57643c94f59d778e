package authenticateuser

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	msgAuthenticated      = "Authentication successful!"
	msgInvalidCredentials = "Invalid username or password"
)

// unknownUserHash is compared against when the username does not exist, so both failure paths
// spend the same bcrypt work.
var unknownUserHash, _ = bcrypt.GenerateFromPassword([]byte("unknown user"), bcrypt.DefaultCost)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	UserByUsername(ctx context.Context, username string) (librarystore.User, error)
}

// TokenIssuer signs access tokens for users.
type TokenIssuer interface {
	Issue(userID int64, username string) (jwtauth.Token, error)
}

// Result is the outcome of a successful login.
type Result struct {
	Message string        `json:"message"`
	Token   jwtauth.Token `json:"token"`
	User    core.UserView `json:"user"`
}

// QueryHandler checks credentials and issues tokens.
type QueryHandler struct {
	store  Store
	issuer TokenIssuer
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store, issuer TokenIssuer) QueryHandler {
	return QueryHandler{store: store, issuer: issuer}
}

// Handle verifies the password of the user and returns a fresh token.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	if err := query.Validate(); err != nil {
		return Result{}, err
	}

	user, err := h.store.UserByUsername(librarystore.WithEventualConsistency(ctx), query.Username)
	switch {
	case errors.Is(err, librarystore.ErrRecordNotFound):
		_ = bcrypt.CompareHashAndPassword(unknownUserHash, []byte(query.Password))
		return Result{}, core.Unauthorized(msgInvalidCredentials)
	case err != nil:
		return Result{}, core.Internal(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(query.Password)); err != nil {
		return Result{}, core.Unauthorized(msgInvalidCredentials).WithCause(err)
	}

	token, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return Result{}, core.Internal(err)
	}

	return Result{
		Message: msgAuthenticated,
		Token:   token,
		User:    core.ToUserView(user),
	}, nil
}

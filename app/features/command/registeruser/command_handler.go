package registeruser

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const msgRegistered = "User Created Successfully!"

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	InsertUser(ctx context.Context, user librarystore.User) (librarystore.User, error)
}

// TokenIssuer signs access tokens for users.
type TokenIssuer interface {
	Issue(userID int64, username string) (jwtauth.Token, error)
}

// Result is the outcome of a successful registration.
type Result struct {
	Message string        `json:"message"`
	UserID  core.UserID   `json:"userId"`
	Token   jwtauth.Token `json:"token"`
	User    core.UserView `json:"user"`
}

// CommandHandler stores new users.
type CommandHandler struct {
	store    Store
	issuer   TokenIssuer
	hashCost int
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithHashCost sets the bcrypt cost, tests lower it to bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(h *CommandHandler) {
		h.hashCost = cost
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, issuer TokenIssuer, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		issuer:   issuer,
		hashCost: bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle validates the command, stores the user and issues a token.
// A taken username is a Conflict, the unique index decides races between two registrations.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[Result], error) {
	metrics := shell.RetryMetrics{Attempts: 1, LastErrorType: "none"}

	result, err := h.executeCommand(ctx, command)
	if err != nil {
		metrics.LastErrorType = "other"
		return shell.NewErrorResult[Result](metrics), err
	}

	return shell.NewSuccessResult(result, metrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(command.Password), h.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Result{}, core.ValidationField("password", "Password must not be longer than 72 bytes")
		}

		return Result{}, core.Internal(err)
	}

	user, err := h.store.InsertUser(librarystore.WithStrongConsistency(ctx), librarystore.User{
		Username:     command.Username,
		PasswordHash: string(hash),
		CreatedAt:    command.RegisteredAt,
	})
	if errors.Is(err, librarystore.ErrDuplicateKey) {
		return Result{}, core.Conflict(fmt.Sprintf("User '%s' already exists", command.Username)).WithCause(err)
	}
	if err != nil {
		return Result{}, core.Internal(err)
	}

	token, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return Result{}, core.Internal(err)
	}

	return Result{
		Message: msgRegistered,
		UserID:  user.ID,
		Token:   token,
		User:    core.ToUserView(user),
	}, nil
}

package authors

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	resourceAuthor = "Author"

	msgCreated      = "Author created successfully!"
	msgUpdated      = "Author updated successfully!"
	msgDeleted      = "Author deleted successfully!"
	msgAlreadyExist = "Author already exists!"
	msgNameTaken    = "Author name already taken!"
)

// Store defines the store operations needed by the author handlers.
type Store interface {
	InsertAuthor(ctx context.Context, author librarystore.Author) (librarystore.Author, error)
	UpdateAuthor(ctx context.Context, author librarystore.Author) error
	SoftDeleteAuthor(ctx context.Context, id int64) error
	AuthorByID(ctx context.Context, id int64) (librarystore.Author, error)
	AuthorByName(ctx context.Context, name string) (librarystore.Author, error)
	Authors(ctx context.Context) ([]librarystore.Author, error)
}

// CreateHandler adds authors.
type CreateHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewCreateHandler creates a new CreateHandler, retryOptions tune the retry on concurrency conflicts.
func NewCreateHandler(store Store, retryOptions ...shell.RetryOption) CreateHandler {
	return CreateHandler{store: store, retryOptions: retryOptions}
}

// Handle stores the author unless its name is blank or already taken.
func (h CreateHandler) Handle(ctx context.Context, command CreateCommand) (shell.HandlerResult[CreateResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (CreateResult, error) {
		ctx = librarystore.WithStrongConsistency(ctx)

		fields := map[string][]string{}
		name := core.RequireNonBlank(command.Name, "authorName", fields)
		if err := core.ValidationOrNil(fields); err != nil {
			return CreateResult{}, err
		}

		if err := nameAvailable(ctx, h.store, name, 0, msgAlreadyExist); err != nil {
			return CreateResult{}, err
		}

		author, err := h.store.InsertAuthor(ctx, librarystore.Author{Name: name})
		if err != nil {
			return CreateResult{}, conflictOr(err, msgAlreadyExist, command.Name)
		}

		return CreateResult{Message: msgCreated, AuthorID: author.ID, Author: toAuthor(author)}, nil
	}, h.retryOptions...)
}

// UpdateHandler renames authors.
type UpdateHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(store Store, retryOptions ...shell.RetryOption) UpdateHandler {
	return UpdateHandler{store: store, retryOptions: retryOptions}
}

// Handle applies the supplied fields. The uniqueness check ignores the author itself.
func (h UpdateHandler) Handle(ctx context.Context, command UpdateCommand) (shell.HandlerResult[UpdateResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (UpdateResult, error) {
		ctx = librarystore.WithStrongConsistency(ctx)

		author, err := h.store.AuthorByID(ctx, command.AuthorID)
		if err != nil {
			return UpdateResult{}, core.FromStoreError(err, resourceAuthor, command.AuthorID)
		}

		fields := map[string][]string{}
		core.ApplyRequired(&author.Name, command.Name, "authorName", fields)
		if err = core.ValidationOrNil(fields); err != nil {
			return UpdateResult{}, err
		}

		if err = nameAvailable(ctx, h.store, author.Name, author.ID, msgNameTaken); err != nil {
			return UpdateResult{}, err
		}

		if err = h.store.UpdateAuthor(ctx, author); err != nil {
			return UpdateResult{}, conflictOr(err, msgNameTaken, command.AuthorID)
		}

		return UpdateResult{Message: msgUpdated, UpdatedAuthor: toAuthor(author)}, nil
	}, h.retryOptions...)
}

// DeleteHandler soft-deletes authors.
type DeleteHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(store Store, retryOptions ...shell.RetryOption) DeleteHandler {
	return DeleteHandler{store: store, retryOptions: retryOptions}
}

// Handle flags the author as deleted, NotFound when there is no such active author.
func (h DeleteHandler) Handle(ctx context.Context, command DeleteCommand) (shell.HandlerResult[DeleteResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (DeleteResult, error) {
		err := h.store.SoftDeleteAuthor(librarystore.WithStrongConsistency(ctx), command.AuthorID)
		if err != nil {
			return DeleteResult{}, core.FromStoreError(err, resourceAuthor, command.AuthorID)
		}

		return DeleteResult{Message: msgDeleted}, nil
	}, h.retryOptions...)
}

// nameAvailable fails with a Conflict when another active author than self carries name.
func nameAvailable(ctx context.Context, store Store, name string, self core.AuthorID, msg string) error {
	existing, err := store.AuthorByName(ctx, name)
	switch {
	case errors.Is(err, librarystore.ErrRecordNotFound):
		return nil
	case err != nil:
		return core.Internal(err)
	case existing.ID != self:
		return core.Conflict(msg)
	default:
		return nil
	}
}

// conflictOr maps a unique index violation that slipped past the lookup to a Conflict.
func conflictOr(err error, msg string, key any) error {
	if errors.Is(err, librarystore.ErrDuplicateKey) {
		return core.Conflict(msg).WithCause(err)
	}

	return core.FromStoreError(err, resourceAuthor, key)
}

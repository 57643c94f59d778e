package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	resourceBook   = "Book"
	resourceAuthor = "Author"

	msgCreated = "Book created successfully!"
	msgUpdated = "Book updated successfully!"
	msgDeleted = "Book deleted successfully!"
)

// Store defines the store operations needed by the book handlers.
type Store interface {
	InsertBook(ctx context.Context, book librarystore.Book) (librarystore.Book, error)
	UpdateBook(ctx context.Context, book librarystore.Book) (librarystore.Book, error)
	SoftDeleteBook(ctx context.Context, id int64) error
	BookByID(ctx context.Context, id int64) (librarystore.Book, error)
	BookByTitle(ctx context.Context, title string) (librarystore.Book, error)
	Books(ctx context.Context, authorID int64) ([]librarystore.Book, error)
	AuthorByID(ctx context.Context, id int64) (librarystore.Author, error)
	Authors(ctx context.Context) ([]librarystore.Author, error)
}

// CreateHandler adds books.
type CreateHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(store Store, retryOptions ...shell.RetryOption) CreateHandler {
	return CreateHandler{store: store, retryOptions: retryOptions}
}

// Handle validates the book, checks that its author exists and that its title is free, then
// stores it with all copies available.
func (h CreateHandler) Handle(ctx context.Context, command CreateCommand) (shell.HandlerResult[CreateResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (CreateResult, error) {
		ctx = librarystore.WithStrongConsistency(ctx)

		fields := map[string][]string{}
		title := core.RequireNonBlank(command.Title, "title", fields)
		validateTotalCopies(command.TotalCopies, fields)
		if err := core.ValidationOrNil(fields); err != nil {
			return CreateResult{}, err
		}

		author, err := h.store.AuthorByID(ctx, command.AuthorID)
		if err != nil {
			return CreateResult{}, core.FromStoreError(err, resourceAuthor, command.AuthorID)
		}

		if err = titleAvailable(ctx, h.store, title, 0); err != nil {
			return CreateResult{}, err
		}

		book, err := h.store.InsertBook(ctx, librarystore.Book{
			Title:           title,
			AuthorID:        command.AuthorID,
			Publisher:       command.Publisher,
			Barcode:         command.Barcode,
			ISBN:            command.ISBN,
			SubjectGenre:    command.SubjectGenre,
			PublicationDate: command.PublicationDate,
			TotalCopies:     command.TotalCopies,
		})
		if err != nil {
			return CreateResult{}, conflictOr(err, title, title)
		}

		return CreateResult{Message: msgCreated, BookID: book.ID, Book: toBook(book, author.Name)}, nil
	}, h.retryOptions...)
}

// UpdateHandler changes books.
type UpdateHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(store Store, retryOptions ...shell.RetryOption) UpdateHandler {
	return UpdateHandler{store: store, retryOptions: retryOptions}
}

// Handle applies the patch. A new author must exist, a new title must be free, and the total
// copies cannot drop below the copies on loan.
func (h UpdateHandler) Handle(ctx context.Context, command UpdateCommand) (shell.HandlerResult[UpdateResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (UpdateResult, error) {
		ctx = librarystore.WithStrongConsistency(ctx)

		book, err := h.store.BookByID(ctx, command.BookID)
		if err != nil {
			return UpdateResult{}, core.FromStoreError(err, resourceBook, command.BookID)
		}

		patch := command.Patch
		fields := map[string][]string{}
		core.ApplyRequired(&book.Title, patch.Title, "title", fields)
		core.ApplyOptional(&book.Publisher, patch.Publisher)
		core.ApplyOptional(&book.Barcode, patch.Barcode)
		core.ApplyOptional(&book.ISBN, patch.ISBN)
		core.ApplyOptional(&book.SubjectGenre, patch.SubjectGenre)

		switch {
		case patch.ClearPublicationDate && patch.PublicationDate != nil:
			fields["publicationDate"] = append(fields["publicationDate"],
				"publicationDate cannot be set and cleared at the same time")
		case patch.ClearPublicationDate:
			book.PublicationDate = nil
		case patch.PublicationDate != nil:
			book.PublicationDate = patch.PublicationDate
		}

		if patch.TotalCopies != nil {
			validateTotalCopies(*patch.TotalCopies, fields)
			book.TotalCopies = *patch.TotalCopies
		}

		if err = core.ValidationOrNil(fields); err != nil {
			return UpdateResult{}, err
		}

		if patch.AuthorID != nil {
			book.AuthorID = *patch.AuthorID
		}

		// A deleted current author does not block other changes, a deleted new author does.
		author, err := h.store.AuthorByID(ctx, book.AuthorID)
		if err != nil && (patch.AuthorID != nil || !errors.Is(err, librarystore.ErrRecordNotFound)) {
			return UpdateResult{}, core.FromStoreError(err, resourceAuthor, book.AuthorID)
		}

		if err = titleAvailable(ctx, h.store, book.Title, book.ID); err != nil {
			return UpdateResult{}, err
		}

		updated, err := h.store.UpdateBook(ctx, book)
		if err != nil {
			return UpdateResult{}, conflictOr(err, book.Title, command.BookID)
		}

		return UpdateResult{Message: msgUpdated, UpdatedBook: toBook(updated, author.Name)}, nil
	}, h.retryOptions...)
}

// DeleteHandler soft-deletes books.
type DeleteHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(store Store, retryOptions ...shell.RetryOption) DeleteHandler {
	return DeleteHandler{store: store, retryOptions: retryOptions}
}

// Handle flags the book as deleted. Open loans of the book can still be returned.
func (h DeleteHandler) Handle(ctx context.Context, command DeleteCommand) (shell.HandlerResult[DeleteResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (DeleteResult, error) {
		err := h.store.SoftDeleteBook(librarystore.WithStrongConsistency(ctx), command.BookID)
		if err != nil {
			return DeleteResult{}, core.FromStoreError(err, resourceBook, command.BookID)
		}

		return DeleteResult{Message: msgDeleted}, nil
	}, h.retryOptions...)
}

func titleAvailable(ctx context.Context, store Store, title string, self core.BookID) error {
	existing, err := store.BookByTitle(ctx, title)
	switch {
	case errors.Is(err, librarystore.ErrRecordNotFound):
		return nil
	case err != nil:
		return core.Internal(err)
	case existing.ID != self:
		return titleTaken(title)
	default:
		return nil
	}
}

func titleTaken(title string) *core.AppError {
	return core.Conflict(fmt.Sprintf("Book with title '%s' already exists", title))
}

func conflictOr(err error, title string, key any) error {
	if errors.Is(err, librarystore.ErrDuplicateKey) {
		return titleTaken(title).WithCause(err)
	}

	return core.FromStoreError(err, resourceBook, key)
}

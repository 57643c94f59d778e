package books

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// ByIDQueryHandler looks up single books.
type ByIDQueryHandler struct {
	store Store
}

// NewByIDQueryHandler creates a new ByIDQueryHandler.
func NewByIDQueryHandler(store Store) ByIDQueryHandler {
	return ByIDQueryHandler{store: store}
}

// Handle returns the book with the name of its author.
func (h ByIDQueryHandler) Handle(ctx context.Context, query ByIDQuery) (Book, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	book, err := h.store.BookByID(ctx, query.BookID)
	if err != nil {
		return Book{}, core.FromStoreError(err, resourceBook, query.BookID)
	}

	author, err := h.store.AuthorByID(ctx, book.AuthorID)
	if err != nil && !errors.Is(err, librarystore.ErrRecordNotFound) {
		return Book{}, core.Internal(err)
	}

	return toBook(book, author.Name), nil
}

// ListQueryHandler lists all books.
type ListQueryHandler struct {
	store Store
}

// NewListQueryHandler creates a new ListQueryHandler.
func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all active books ordered by id.
func (h ListQueryHandler) Handle(ctx context.Context, _ ListQuery) (Books, error) {
	return listBooks(librarystore.WithEventualConsistency(ctx), h.store, 0)
}

// ByAuthorQueryHandler lists the books of one author.
type ByAuthorQueryHandler struct {
	store Store
}

// NewByAuthorQueryHandler creates a new ByAuthorQueryHandler.
func NewByAuthorQueryHandler(store Store) ByAuthorQueryHandler {
	return ByAuthorQueryHandler{store: store}
}

// Handle returns the active books of the author, NotFound when the author does not exist.
func (h ByAuthorQueryHandler) Handle(ctx context.Context, query ByAuthorQuery) (Books, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	if _, err := h.store.AuthorByID(ctx, query.AuthorID); err != nil {
		return Books{}, core.FromStoreError(err, resourceAuthor, query.AuthorID)
	}

	return listBooks(ctx, h.store, query.AuthorID)
}

// listBooks resolves author names with one extra query instead of one per book.
func listBooks(ctx context.Context, store Store, authorID core.AuthorID) (Books, error) {
	stored, err := store.Books(ctx, authorID)
	if err != nil {
		return Books{}, core.Internal(err)
	}

	authors, err := store.Authors(ctx)
	if err != nil {
		return Books{}, core.Internal(err)
	}

	names := make(map[core.AuthorID]string, len(authors))
	for _, author := range authors {
		names[author.ID] = author.Name
	}

	list := make([]Book, 0, len(stored))
	for _, book := range stored {
		list = append(list, toBook(book, names[book.AuthorID]))
	}

	return Books{Books: list, Count: len(list)}, nil
}

package authors

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// ByIDQueryHandler looks up single authors.
type ByIDQueryHandler struct {
	store Store
}

// NewByIDQueryHandler creates a new ByIDQueryHandler.
func NewByIDQueryHandler(store Store) ByIDQueryHandler {
	return ByIDQueryHandler{store: store}
}

// Handle returns the author, NotFound when it is missing or deleted.
func (h ByIDQueryHandler) Handle(ctx context.Context, query ByIDQuery) (Author, error) {
	author, err := h.store.AuthorByID(librarystore.WithEventualConsistency(ctx), query.AuthorID)
	if err != nil {
		return Author{}, core.FromStoreError(err, resourceAuthor, query.AuthorID)
	}

	return toAuthor(author), nil
}

// ListQueryHandler lists authors.
type ListQueryHandler struct {
	store Store
}

// NewListQueryHandler creates a new ListQueryHandler.
func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all active authors ordered by id.
func (h ListQueryHandler) Handle(ctx context.Context, _ ListQuery) (Authors, error) {
	stored, err := h.store.Authors(librarystore.WithEventualConsistency(ctx))
	if err != nil {
		return Authors{}, core.Internal(err)
	}

	list := make([]Author, 0, len(stored))
	for _, author := range stored {
		list = append(list, toAuthor(author))
	}

	return Authors{Authors: list, Count: len(list)}, nil
}

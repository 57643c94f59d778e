package currentuser

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const resourceUser = "User"

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	UserByID(ctx context.Context, id int64) (librarystore.User, error)
}

// QueryHandler loads the user of a verified token.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the user without credentials. A token of a user that no longer exists yields NotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.UserView, error) {
	user, err := h.store.UserByID(librarystore.WithEventualConsistency(ctx), query.UserID)
	if err != nil {
		return core.UserView{}, core.FromStoreError(err, resourceUser, query.UserID)
	}

	return core.ToUserView(user), nil
}

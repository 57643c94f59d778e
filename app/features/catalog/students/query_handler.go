package students

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// ByIDQueryHandler looks up single students.
type ByIDQueryHandler struct {
	store Store
}

// NewByIDQueryHandler creates a new ByIDQueryHandler.
func NewByIDQueryHandler(store Store) ByIDQueryHandler {
	return ByIDQueryHandler{store: store}
}

// Handle returns the student, NotFound when it is missing or deleted.
func (h ByIDQueryHandler) Handle(ctx context.Context, query ByIDQuery) (Student, error) {
	student, err := h.store.StudentByID(librarystore.WithEventualConsistency(ctx), query.StudentID)
	if err != nil {
		return Student{}, core.FromStoreError(err, resourceStudent, query.StudentID)
	}

	return toStudent(student), nil
}

// ListQueryHandler lists students.
type ListQueryHandler struct {
	store Store
}

// NewListQueryHandler creates a new ListQueryHandler.
func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all active students ordered by id.
func (h ListQueryHandler) Handle(ctx context.Context, _ ListQuery) (Students, error) {
	stored, err := h.store.Students(librarystore.WithEventualConsistency(ctx))
	if err != nil {
		return Students{}, core.Internal(err)
	}

	list := make([]Student, 0, len(stored))
	for _, student := range stored {
		list = append(list, toStudent(student))
	}

	return Students{Students: list, Count: len(list)}, nil
}

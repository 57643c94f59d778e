package students

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	resourceStudent = "Student"

	msgCreated       = "Student Created Successfully"
	msgUpdated       = "Student updated successfully!"
	msgDeleted       = "Student Deleted Successfully!"
	msgAlreadyExists = "Student already exists!"
)

// Store defines the store operations needed by the student handlers.
type Store interface {
	InsertStudent(ctx context.Context, student librarystore.Student) (librarystore.Student, error)
	UpdateStudent(ctx context.Context, student librarystore.Student) error
	SoftDeleteStudent(ctx context.Context, id int64) error
	StudentByID(ctx context.Context, id int64) (librarystore.Student, error)
	StudentByName(ctx context.Context, name string) (librarystore.Student, error)
	Students(ctx context.Context) ([]librarystore.Student, error)
}

// CreateHandler registers students.
type CreateHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(store Store, retryOptions ...shell.RetryOption) CreateHandler {
	return CreateHandler{store: store, retryOptions: retryOptions}
}

// Handle stores the student unless the name is blank or already taken.
func (h CreateHandler) Handle(ctx context.Context, command CreateCommand) (shell.HandlerResult[CreateResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (CreateResult, error) {
		ctx = librarystore.WithStrongConsistency(ctx)

		fields := map[string][]string{}
		name := core.RequireNonBlank(command.Name, "name", fields)
		if err := core.ValidationOrNil(fields); err != nil {
			return CreateResult{}, err
		}

		if err := nameAvailable(ctx, h.store, name, 0); err != nil {
			return CreateResult{}, err
		}

		student, err := h.store.InsertStudent(ctx, librarystore.Student{
			Name:      name,
			Address:   command.Address,
			ContactNo: command.ContactNo,
			Faculty:   command.Faculty,
			Semester:  command.Semester,
		})
		if err != nil {
			return CreateResult{}, conflictOr(err, name)
		}

		return CreateResult{Message: msgCreated, StudentID: student.ID, Student: toStudent(student)}, nil
	}, h.retryOptions...)
}

// UpdateHandler changes students.
type UpdateHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(store Store, retryOptions ...shell.RetryOption) UpdateHandler {
	return UpdateHandler{store: store, retryOptions: retryOptions}
}

// Handle applies the patch. An empty optional field is cleared, a blank name is a Validation error.
func (h UpdateHandler) Handle(ctx context.Context, command UpdateCommand) (shell.HandlerResult[UpdateResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (UpdateResult, error) {
		ctx = librarystore.WithStrongConsistency(ctx)

		student, err := h.store.StudentByID(ctx, command.StudentID)
		if err != nil {
			return UpdateResult{}, core.FromStoreError(err, resourceStudent, command.StudentID)
		}

		patch := command.Patch
		fields := map[string][]string{}
		core.ApplyRequired(&student.Name, patch.Name, "name", fields)
		core.ApplyOptional(&student.Address, patch.Address)
		core.ApplyOptional(&student.ContactNo, patch.ContactNo)
		core.ApplyOptional(&student.Faculty, patch.Faculty)
		core.ApplyOptional(&student.Semester, patch.Semester)

		if err = core.ValidationOrNil(fields); err != nil {
			return UpdateResult{}, err
		}

		if err = nameAvailable(ctx, h.store, student.Name, student.ID); err != nil {
			return UpdateResult{}, err
		}

		if err = h.store.UpdateStudent(ctx, student); err != nil {
			return UpdateResult{}, conflictOr(err, command.StudentID)
		}

		return UpdateResult{Message: msgUpdated, UpdatedStudent: toStudent(student)}, nil
	}, h.retryOptions...)
}

// DeleteHandler soft-deletes students.
type DeleteHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(store Store, retryOptions ...shell.RetryOption) DeleteHandler {
	return DeleteHandler{store: store, retryOptions: retryOptions}
}

// Handle flags the student as deleted. Loans of the student stay as they are.
func (h DeleteHandler) Handle(ctx context.Context, command DeleteCommand) (shell.HandlerResult[DeleteResult], error) {
	return shell.HandleWithRetry(ctx, func(ctx context.Context) (DeleteResult, error) {
		err := h.store.SoftDeleteStudent(librarystore.WithStrongConsistency(ctx), command.StudentID)
		if err != nil {
			return DeleteResult{}, core.FromStoreError(err, resourceStudent, command.StudentID)
		}

		return DeleteResult{Message: msgDeleted}, nil
	}, h.retryOptions...)
}

func nameAvailable(ctx context.Context, store Store, name string, self core.StudentID) error {
	existing, err := store.StudentByName(ctx, name)
	switch {
	case errors.Is(err, librarystore.ErrRecordNotFound):
		return nil
	case err != nil:
		return core.Internal(err)
	case existing.ID != self:
		return core.Conflict(msgAlreadyExists)
	default:
		return nil
	}
}

func conflictOr(err error, key any) error {
	if errors.Is(err, librarystore.ErrDuplicateKey) {
		return core.Conflict(msgAlreadyExists).WithCause(err)
	}

	return core.FromStoreError(err, resourceStudent, key)
}

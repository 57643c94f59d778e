package checkoutbook_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

var fakeClock = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 2)
	student := GivenStudent(t, store)

	// act
	result, err := handler.Handle(ctx, checkoutbook.BuildCommand(book.ID, student.ID, 0, fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.RetryAttempts)

	issue := result.Value.Issue
	assert.NotZero(t, issue.LoanID)
	assert.Equal(t, book.Title, issue.BookTitle)
	assert.Equal(t, student.Name, issue.StudentName)
	assert.Equal(t, fakeClock, issue.IssueDate)
	assert.Equal(t, fakeClock.AddDate(0, 0, 14), issue.DueDate)
	assert.False(t, issue.IsReturned)
	assert.NotEmpty(t, result.Value.Message)

	stored, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AvailableCopies)

	loan, err := store.LoanByID(ctx, issue.LoanID)
	require.NoError(t, err)
	assert.Equal(t, fakeClock.AddDate(0, 0, 14), loan.DueDate)
}

func Test_CommandHandler_Handle_CustomBorrowDays(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)

	// act
	result, err := handler.Handle(context.Background(), checkoutbook.BuildCommand(book.ID, student.ID, 3, fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, fakeClock.AddDate(0, 0, 3), result.Value.Issue.DueDate)
}

func Test_CommandHandler_Handle_Error_NoCopiesLeavesStateUntouched(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 0)
	student := GivenStudent(t, store)

	// act
	_, err := handler.Handle(ctx, checkoutbook.BuildCommand(book.ID, student.ID, 0, fakeClock))

	// assert
	assert.True(t, core.HasReason(err, core.ReasonNoCopiesAvailable))

	stored, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableCopies)

	loans, err := store.Loans(ctx, librarystore.LoanFilter{BookID: book.ID})
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func Test_CommandHandler_Handle_Error_DuplicateCheckout(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 3)
	student := GivenStudent(t, store)
	_, err := handler.Handle(ctx, checkoutbook.BuildCommand(book.ID, student.ID, 0, fakeClock))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, checkoutbook.BuildCommand(book.ID, student.ID, 0, fakeClock.Add(time.Hour)))

	// assert
	assert.True(t, core.HasReason(err, core.ReasonDuplicateCheckout))

	stored, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableCopies)
}

func Test_CommandHandler_Handle_Error_NotFound(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)

	// act
	_, bookErr := handler.Handle(context.Background(), checkoutbook.BuildCommand(book.ID+1000, student.ID, 0, fakeClock))
	_, studentErr := handler.Handle(context.Background(), checkoutbook.BuildCommand(book.ID, student.ID+1000, 0, fakeClock))

	// assert
	require.True(t, core.IsKind(bookErr, core.KindNotFound))
	assert.Contains(t, bookErr.Error(), fmt.Sprintf("Book with id '%d' was not found.", book.ID+1000))
	require.True(t, core.IsKind(studentErr, core.KindNotFound))
	assert.Contains(t, studentErr.Error(), "Student with id")
}

func Test_CommandHandler_Handle_Error_NegativeBorrowDays(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)

	// act
	_, err := handler.Handle(context.Background(), checkoutbook.BuildCommand(book.ID, student.ID, -2, fakeClock))

	// assert
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, core.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "borrowDays")
}

func Test_CommandHandler_Handle_ConcurrentCheckoutsOfTheLastCopy(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := checkoutbook.NewCommandHandler(store)

	// arrange
	const contenders = 5
	book := GivenBook(t, store, 1)
	students := make([]librarystore.Student, contenders)
	for i := range students {
		students[i] = GivenStudent(t, store)
	}

	// act
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := range students {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, checkoutbook.BuildCommand(book.ID, students[i].ID, 0, fakeClock))
		}(i)
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, core.HasReason(err, core.ReasonNoCopiesAvailable), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableCopies)
}

// conflictingStore fails the first checkout writes with a concurrency conflict.
type conflictingStore struct {
	sqlengine.Store
	conflicts int
	mu        sync.Mutex
}

func (s *conflictingStore) CheckoutBook(ctx context.Context, loan librarystore.Loan) (librarystore.Loan, error) {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return librarystore.Loan{}, librarystore.ErrConcurrencyConflict
	}
	s.mu.Unlock()

	return s.Store.CheckoutBook(ctx, loan)
}

func Test_CommandHandler_Handle_RetriesConcurrencyConflicts(t *testing.T) {
	// setup
	store := NewStore(t)
	conflicting := &conflictingStore{Store: store, conflicts: 2}
	handler := checkoutbook.NewCommandHandler(
		conflicting,
		checkoutbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)

	// act
	result, err := handler.Handle(context.Background(), checkoutbook.BuildCommand(book.ID, student.ID, 0, fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.RetryAttempts)
	assert.Greater(t, result.TotalRetryDelay, time.Duration(0))
}

func Test_CommandHandler_Handle_ConcurrencyConflictsExhaustRetries(t *testing.T) {
	// setup
	store := NewStore(t)
	conflicting := &conflictingStore{Store: store, conflicts: 10}
	handler := checkoutbook.NewCommandHandler(
		conflicting,
		checkoutbook.WithRetryOptions(shell.WithMaxAttempts(2), shell.WithBaseDelay(time.Millisecond)),
	)
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)

	// act
	result, err := handler.Handle(context.Background(), checkoutbook.BuildCommand(book.ID, student.ID, 0, fakeClock))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrConcurrencyConflict)
	assert.True(t, core.IsKind(err, core.KindInternal))
	assert.True(t, result.RetriesExhausted)
	assert.Equal(t, 2, result.RetryAttempts)
}

package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-management-api/app/features/command/returnbook"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

var fakeClock = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

func Test_CommandHandler_Handle_Success_RestoresInventory(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 2)
	student := GivenStudent(t, store)
	loan := GivenLoan(t, store, book.ID, student.ID, fakeClock)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(loan.ID, fakeClock.AddDate(0, 0, 3)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Value.DaysOverdue)
	assert.True(t, result.Value.Restocked)
	assert.True(t, result.Value.Issue.IsReturned)
	require.NotNil(t, result.Value.Issue.ReturnDate)
	assert.Equal(t, fakeClock.AddDate(0, 0, 3), *result.Value.Issue.ReturnDate)

	stored, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableCopies)
}

func Test_CommandHandler_Handle_Success_ReportsDaysOverdue(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)
	loan := GivenLoan(t, store, book.ID, student.ID, fakeClock)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand(loan.ID, fakeClock.AddDate(0, 0, 19)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, result.Value.DaysOverdue)
	assert.Contains(t, result.Value.Message, "overdue")
}

func Test_CommandHandler_Handle_Error_DoubleReturnKeepsReturnDate(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)
	loan := GivenLoan(t, store, book.ID, student.ID, fakeClock)
	firstReturn := fakeClock.AddDate(0, 0, 1)
	_, err := handler.Handle(ctx, returnbook.BuildCommand(loan.ID, firstReturn))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, returnbook.BuildCommand(loan.ID, fakeClock.AddDate(0, 0, 2)))

	// assert
	assert.True(t, core.HasReason(err, core.ReasonAlreadyReturned))

	stored, err := store.LoanByID(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReturnDate)
	assert.Equal(t, firstReturn, *stored.ReturnDate)

	storedBook, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, storedBook.AvailableCopies)
}

func Test_CommandHandler_Handle_Error_UnknownLoan(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := returnbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), returnbook.BuildCommand(4711, fakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindNotFound))
}

func Test_CommandHandler_Handle_Success_BookDeletedMeanwhile(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)
	loan := GivenLoan(t, store, book.ID, student.ID, fakeClock)
	require.NoError(t, store.SoftDeleteBook(ctx, book.ID))

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(loan.ID, fakeClock.AddDate(0, 0, 1)))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Value.Restocked)
	assert.True(t, result.Value.Issue.IsReturned)
}

func Test_CommandHandler_SingleCopyScenario(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	checkout := checkoutbook.NewCommandHandler(store)
	giveBack := returnbook.NewCommandHandler(store)

	// arrange
	book := GivenBook(t, store, 1)
	first := GivenStudent(t, store)
	second := GivenStudent(t, store)

	// act / assert
	firstLoan, err := checkout.Handle(ctx, checkoutbook.BuildCommand(book.ID, first.ID, 0, fakeClock))
	require.NoError(t, err)

	_, err = checkout.Handle(ctx, checkoutbook.BuildCommand(book.ID, second.ID, 0, fakeClock.Add(time.Hour)))
	assert.True(t, core.HasReason(err, core.ReasonNoCopiesAvailable))

	_, err = giveBack.Handle(ctx, returnbook.BuildCommand(firstLoan.Value.Issue.LoanID, fakeClock.Add(2*time.Hour)))
	require.NoError(t, err)

	_, err = checkout.Handle(ctx, checkoutbook.BuildCommand(book.ID, second.ID, 0, fakeClock.Add(3*time.Hour)))
	assert.NoError(t, err)

	stored, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableCopies)
}

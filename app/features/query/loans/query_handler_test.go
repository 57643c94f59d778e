package loans_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/features/query/loans"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

var fakeClock = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

func loanIDs(result loans.Loans) []int64 {
	ids := make([]int64, 0, len(result.Loans))
	for _, loan := range result.Loans {
		ids = append(ids, loan.LoanID)
	}

	return ids
}

func Test_QueryHandler_Handle_FiltersByStudentAndBook(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := loans.NewQueryHandler(store)

	// arrange
	bookA := GivenBook(t, store, 3)
	bookB := GivenBook(t, store, 3)
	alice := GivenStudent(t, store)
	bob := GivenStudent(t, store)

	aliceA := GivenLoan(t, store, bookA.ID, alice.ID, fakeClock.AddDate(0, 0, -3))
	aliceB := GivenLoan(t, store, bookB.ID, alice.ID, fakeClock.AddDate(0, 0, -2))
	bobA := GivenLoan(t, store, bookA.ID, bob.ID, fakeClock.AddDate(0, 0, -1))
	_, _, err := store.ReturnLoan(ctx, aliceA.ID, fakeClock)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		query    loans.Query
		expected []int64
	}{
		{name: "all loans", query: loans.BuildQuery(fakeClock), expected: []int64{bobA.ID, aliceB.ID, aliceA.ID}},
		{name: "by student", query: loans.BuildByStudentQuery(alice.ID, fakeClock), expected: []int64{aliceB.ID, aliceA.ID}},
		{name: "by book", query: loans.BuildByBookQuery(bookA.ID, fakeClock), expected: []int64{bobA.ID, aliceA.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(ctx, tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, loanIDs(result))
			assert.Equal(t, len(tc.expected), result.Count)
		})
	}
}

func Test_QueryHandler_Handle_Error_UnknownStudentOrBook(t *testing.T) {
	// setup
	handler := loans.NewQueryHandler(NewStore(t))

	// act
	_, studentErr := handler.Handle(context.Background(), loans.BuildByStudentQuery(999, fakeClock))
	_, bookErr := handler.Handle(context.Background(), loans.BuildByBookQuery(999, fakeClock))

	// assert
	assert.True(t, core.IsKind(studentErr, core.KindNotFound))
	assert.Contains(t, studentErr.Error(), "Student with id '999' was not found.")
	assert.True(t, core.IsKind(bookErr, core.KindNotFound))
}

func Test_ByIDQueryHandler_Handle_Success(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := loans.NewByIDQueryHandler(store)

	// arrange
	book := GivenBook(t, store, 1)
	student := GivenStudent(t, store)
	loan := GivenLoan(t, store, book.ID, student.ID, fakeClock.AddDate(0, 0, -15))

	// act
	summary, err := handler.Handle(context.Background(), loans.BuildByIDQuery(loan.ID, fakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, book.Title, summary.BookTitle)
	assert.Equal(t, student.Name, summary.StudentName)
	assert.True(t, summary.IsOverdue)
	assert.Equal(t, 1, summary.DaysOverdue)
}

func Test_ByIDQueryHandler_Handle_Error_DeletedLoan(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := loans.NewByIDQueryHandler(store)

	// arrange
	loan := GivenLoan(t, store, GivenBook(t, store, 1).ID, GivenStudent(t, store).ID, fakeClock)
	_, err := store.SoftDeleteLoan(ctx, loan.ID)
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, loans.BuildByIDQuery(loan.ID, fakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindNotFound))
}

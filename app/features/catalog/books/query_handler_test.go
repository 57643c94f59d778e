package books_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/features/catalog/books"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

func Test_ByAuthorQueryHandler_Handle_ListsOnlyBooksOfTheAuthor(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	author := GivenAuthor(t, store)

	// arrange
	first, err := store.InsertBook(ctx, librarystore.Book{Title: UniqueName("A"), AuthorID: author.ID, TotalCopies: 1})
	require.NoError(t, err)
	second, err := store.InsertBook(ctx, librarystore.Book{Title: UniqueName("B"), AuthorID: author.ID, TotalCopies: 1})
	require.NoError(t, err)
	GivenBook(t, store, 1)

	// act
	result, err := books.NewByAuthorQueryHandler(store).Handle(ctx, books.BuildByAuthorQuery(author.ID))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, first.ID, result.Books[0].BookID)
	assert.Equal(t, second.ID, result.Books[1].BookID)
	assert.Equal(t, author.Name, result.Books[0].AuthorName)
}

func Test_ByAuthorQueryHandler_Handle_Error_UnknownAuthor(t *testing.T) {
	// act
	_, err := books.NewByAuthorQueryHandler(NewStore(t)).Handle(context.Background(), books.BuildByAuthorQuery(999999))

	// assert
	assert.True(t, core.IsKind(err, core.KindNotFound))
	assert.Contains(t, err.Error(), "Author with id '999999' was not found.")
}

func Test_ListQueryHandler_Handle_SkipsDeletedBooks(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	kept := GivenBook(t, store, 1)
	deleted := GivenBook(t, store, 1)
	require.NoError(t, store.SoftDeleteBook(ctx, deleted.ID))

	// act
	result, err := books.NewListQueryHandler(store).Handle(ctx, books.ListQuery{})

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, kept.ID, result.Books[0].BookID)
}

func Test_ByIDQueryHandler_Handle_ReportsAvailability(t *testing.T) {
	// setup
	store := NewStore(t)
	book := GivenBook(t, store, 1)
	GivenLoan(t, store, book.ID, GivenStudent(t, store).ID, fakeClock)

	// act
	result, err := books.NewByIDQueryHandler(store).Handle(context.Background(), books.BuildByIDQuery(book.ID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.AvailableCopies)
	assert.False(t, result.IsAvailable)
}

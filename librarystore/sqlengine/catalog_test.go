package sqlengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

func Test_Authors_InsertAndRead(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	name := UniqueName("Author")

	// act
	inserted, err := store.InsertAuthor(ctx, librarystore.Author{Name: name})

	// assert
	require.NoError(t, err)
	assert.NotZero(t, inserted.ID)

	byID, err := store.AuthorByID(ctx, inserted.ID)
	assert.NoError(t, err)
	assert.Equal(t, name, byID.Name)

	byName, err := store.AuthorByName(ctx, name)
	assert.NoError(t, err)
	assert.Equal(t, inserted.ID, byName.ID)
}

func Test_Authors_DuplicateName_IsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	author := GivenAuthor(t, store)

	// act
	_, err := store.InsertAuthor(ctx, librarystore.Author{Name: author.Name})

	// assert
	assert.ErrorIs(t, err, librarystore.ErrDuplicateKey)
}

func Test_Authors_SoftDeleted_AreInvisible_AndFreeTheirName(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	author := GivenAuthor(t, store)

	// act
	err := store.SoftDeleteAuthor(ctx, author.ID)

	// assert
	require.NoError(t, err)

	_, err = store.AuthorByID(ctx, author.ID)
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)

	authors, err := store.Authors(ctx)
	assert.NoError(t, err)
	assert.Empty(t, authors)

	assert.ErrorIs(t, store.SoftDeleteAuthor(ctx, author.ID), librarystore.ErrRecordNotFound)

	_, err = store.InsertAuthor(ctx, librarystore.Author{Name: author.Name})
	assert.NoError(t, err, "name of a deleted author should be reusable")
}

func Test_Authors_Update(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	author := GivenAuthor(t, store)
	author.Name = UniqueName("Renamed")

	// act
	err := store.UpdateAuthor(ctx, author)

	// assert
	require.NoError(t, err)
	reloaded, err := store.AuthorByID(ctx, author.ID)
	assert.NoError(t, err)
	assert.Equal(t, author.Name, reloaded.Name)

	assert.ErrorIs(t, store.UpdateAuthor(ctx, librarystore.Author{ID: 4711, Name: "x"}), librarystore.ErrRecordNotFound)
}

func Test_Books_Insert_SetsAvailableToTotal(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	author := GivenAuthor(t, store)
	published := time.Date(1999, 5, 1, 0, 0, 0, 0, time.UTC)

	// act
	book, err := store.InsertBook(ctx, librarystore.Book{
		Title:           UniqueName("Book"),
		AuthorID:        author.ID,
		PublicationDate: &published,
		TotalCopies:     3,
	})

	// assert
	require.NoError(t, err)

	reloaded, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.TotalCopies)
	assert.Equal(t, 3, reloaded.AvailableCopies)
	require.NotNil(t, reloaded.PublicationDate)
	assert.True(t, published.Equal(*reloaded.PublicationDate))
}

func Test_Books_ListByAuthor(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	first := GivenBook(t, store, 1)
	GivenBook(t, store, 1)

	// act
	all, errAll := store.Books(ctx, 0)
	byAuthor, errByAuthor := store.Books(ctx, first.AuthorID)

	// assert
	assert.NoError(t, errAll)
	assert.Len(t, all, 2)
	assert.NoError(t, errByAuthor)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, first.ID, byAuthor[0].ID)
}

func Test_Books_Update_ShiftsAvailableByTotalDelta(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	book := GivenBook(t, store, 3)
	student := GivenStudent(t, store)
	GivenLoan(t, store, book.ID, student.ID, time.Now())

	book.TotalCopies = 5
	book.Publisher = "Other Press"

	// act
	updated, err := store.UpdateBook(ctx, book)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalCopies)
	assert.Equal(t, 4, updated.AvailableCopies)
	assert.Equal(t, "Other Press", updated.Publisher)
}

func Test_Books_Update_BelowCopiesOnLoan_IsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	book := GivenBook(t, store, 2)
	GivenLoan(t, store, book.ID, GivenStudent(t, store).ID, time.Now())
	GivenLoan(t, store, book.ID, GivenStudent(t, store).ID, time.Now())

	changed := book
	changed.TotalCopies = 1
	changed.Publisher = "Should Not Stick"

	// act
	_, err := store.UpdateBook(ctx, changed)

	// assert
	assert.ErrorIs(t, err, librarystore.ErrCopiesOnLoan)

	reloaded, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TotalCopies)
	assert.Equal(t, 0, reloaded.AvailableCopies)
	assert.Equal(t, book.Publisher, reloaded.Publisher, "transaction should have rolled back")
}

func Test_Students_CRUD(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	student := GivenStudent(t, store)
	student.Semester = "4"
	student.ContactNo = "+49 30 123456"

	// act
	err := store.UpdateStudent(ctx, student)

	// assert
	require.NoError(t, err)

	byName, err := store.StudentByName(ctx, student.Name)
	require.NoError(t, err)
	assert.Equal(t, "4", byName.Semester)
	assert.Equal(t, "+49 30 123456", byName.ContactNo)

	require.NoError(t, store.SoftDeleteStudent(ctx, student.ID))
	_, err = store.StudentByID(ctx, student.ID)
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)

	students, err := store.Students(ctx)
	assert.NoError(t, err)
	assert.Empty(t, students)
}

func Test_Users_InsertAndLookup(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)

	// arrange
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := librarystore.User{Username: UniqueName("user"), PasswordHash: "hash", CreatedAt: createdAt}

	// act
	inserted, err := store.InsertUser(ctx, user)

	// assert
	require.NoError(t, err)

	byName, err := store.UserByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)
	assert.True(t, createdAt.Equal(byName.CreatedAt))

	byID, err := store.UserByID(ctx, inserted.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)

	_, err = store.InsertUser(ctx, user)
	assert.ErrorIs(t, err, librarystore.ErrDuplicateKey)

	_, err = store.UserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)
}

func Test_Ping(t *testing.T) {
	store := NewStore(t)

	assert.NoError(t, store.Ping(context.Background()))
}

package storewrapper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine"
)

// UniqueName returns prefix followed by a random suffix, so natural keys never collide between tests.
func UniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

// GivenAuthor stores an author with a unique name.
func GivenAuthor(t testing.TB, store sqlengine.Store) librarystore.Author {
	t.Helper()

	author, err := store.InsertAuthor(context.Background(), librarystore.Author{Name: UniqueName("Author")})
	require.NoError(t, err, "error inserting author in test setup")

	return author
}

// GivenBook stores a book of a new author with the given number of copies.
func GivenBook(t testing.TB, store sqlengine.Store, copies int) librarystore.Book {
	t.Helper()

	author := GivenAuthor(t, store)

	book, err := store.InsertBook(context.Background(), librarystore.Book{
		Title:       UniqueName("Book"),
		AuthorID:    author.ID,
		Publisher:   "Test Press",
		ISBN:        "978-3-16-148410-0",
		TotalCopies: copies,
	})
	require.NoError(t, err, "error inserting book in test setup")

	return book
}

// GivenStudent stores a student with a unique name.
func GivenStudent(t testing.TB, store sqlengine.Store) librarystore.Student {
	t.Helper()

	student, err := store.InsertStudent(context.Background(), librarystore.Student{
		Name:    UniqueName("Student"),
		Faculty: "Science",
	})
	require.NoError(t, err, "error inserting student in test setup")

	return student
}

// GivenLoan checks the book out to the student at issuedAt, due two weeks later.
func GivenLoan(
	t testing.TB,
	store sqlengine.Store,
	bookID int64,
	studentID int64,
	issuedAt time.Time,
) librarystore.Loan {

	t.Helper()

	loan, err := store.CheckoutBook(context.Background(), librarystore.Loan{
		BookID:    bookID,
		StudentID: studentID,
		IssueDate: issuedAt,
		DueDate:   issuedAt.AddDate(0, 0, 14),
	})
	require.NoError(t, err, "error checking out book in test setup")

	return loan
}

// GivenUser stores a user with a unique username whose password hashes to password.
func GivenUser(t testing.TB, store sqlengine.Store, password string) librarystore.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err, "error hashing password in test setup")

	user, err := store.InsertUser(context.Background(), librarystore.User{
		Username:     UniqueName("user"),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	})
	require.NoError(t, err, "error inserting user in test setup")

	return user
}

package books

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

const (
	byIDQueryType     = "BookByID"
	listQueryType     = "Books"
	byAuthorQueryType = "BooksByAuthor"
)

// ByIDQuery looks up one book.
type ByIDQuery struct {
	BookID core.BookID
}

// BuildByIDQuery creates a new ByIDQuery.
func BuildByIDQuery(bookID core.BookID) ByIDQuery {
	return ByIDQuery{BookID: bookID}
}

// QueryType returns the query type.
func (q ByIDQuery) QueryType() string {
	return byIDQueryType
}

// ListQuery lists all books.
type ListQuery struct{}

// QueryType returns the query type.
func (q ListQuery) QueryType() string {
	return listQueryType
}

// ByAuthorQuery lists the books of one author.
type ByAuthorQuery struct {
	AuthorID core.AuthorID
}

// BuildByAuthorQuery creates a new ByAuthorQuery.
func BuildByAuthorQuery(authorID core.AuthorID) ByAuthorQuery {
	return ByAuthorQuery{AuthorID: authorID}
}

// QueryType returns the query type.
func (q ByAuthorQuery) QueryType() string {
	return byAuthorQueryType
}

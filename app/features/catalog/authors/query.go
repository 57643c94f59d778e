package authors

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

const (
	byIDQueryType = "AuthorByID"
	listQueryType = "Authors"
)

// ByIDQuery looks up one author.
type ByIDQuery struct {
	AuthorID core.AuthorID
}

// BuildByIDQuery creates a new ByIDQuery.
func BuildByIDQuery(authorID core.AuthorID) ByIDQuery {
	return ByIDQuery{AuthorID: authorID}
}

// QueryType returns the query type.
func (q ByIDQuery) QueryType() string {
	return byIDQueryType
}

// ListQuery lists all authors.
type ListQuery struct{}

// QueryType returns the query type.
func (q ListQuery) QueryType() string {
	return listQueryType
}

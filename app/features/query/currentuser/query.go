package currentuser

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

const (
	queryType = "CurrentUser"
)

// Query asks for the user an access token was issued to.
type Query struct {
	UserID core.UserID
}

// BuildQuery creates a new Query.
func BuildQuery(userID core.UserID) Query {
	return Query{UserID: userID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

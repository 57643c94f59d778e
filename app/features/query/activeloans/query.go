package activeloans

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	queryType = "ActiveLoans"
)

// Query represents the intent to list all active loans as of Now.
type Query struct {
	Now time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(now time.Time) Query {
	return Query{Now: core.ToTimestamp(now)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

package overdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	queryType = "OverdueLoans"
)

// Query represents the intent to list the loans overdue at Now.
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

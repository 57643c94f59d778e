package authenticateuser

import (
	"strings"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	queryType = "AuthenticateUser"
)

// Query represents the intent to log in with a username and password.
type Query struct {
	Username string
	Password string
}

// BuildQuery creates a new Query, the username is trimmed.
func BuildQuery(username string, password string) Query {
	return Query{
		Username: strings.TrimSpace(username),
		Password: password,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Validate reports every missing field at once.
func (q Query) Validate() error {
	fields := map[string][]string{}

	if q.Username == "" {
		fields["username"] = []string{"Username is required"}
	}

	if q.Password == "" {
		fields["password"] = []string{"Password is required"}
	}

	return core.ValidationOrNil(fields)
}

package students

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

const (
	byIDQueryType = "StudentByID"
	listQueryType = "Students"
)

// ByIDQuery looks up one student.
type ByIDQuery struct {
	StudentID core.StudentID
}

// BuildByIDQuery creates a new ByIDQuery.
func BuildByIDQuery(studentID core.StudentID) ByIDQuery {
	return ByIDQuery{StudentID: studentID}
}

// QueryType returns the query type.
func (q ByIDQuery) QueryType() string {
	return byIDQueryType
}

// ListQuery lists all students.
type ListQuery struct{}

// QueryType returns the query type.
func (q ListQuery) QueryType() string {
	return listQueryType
}

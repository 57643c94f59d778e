package students

import (
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Student is the shape in which students leave the application.
type Student struct {
	StudentID core.StudentID `json:"studentId"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	ContactNo string         `json:"contactNo"`
	Faculty   string         `json:"faculty"`
	Semester  string         `json:"semester"`
}

func toStudent(s librarystore.Student) Student {
	return Student{
		StudentID: s.ID,
		Name:      s.Name,
		Address:   s.Address,
		ContactNo: s.ContactNo,
		Faculty:   s.Faculty,
		Semester:  s.Semester,
	}
}

// CreateResult is the outcome of a successful create.
type CreateResult struct {
	Message   string         `json:"message"`
	StudentID core.StudentID `json:"studentId"`
	Student   Student        `json:"student"`
}

// UpdateResult is the outcome of a successful update.
type UpdateResult struct {
	Message        string  `json:"message"`
	UpdatedStudent Student `json:"updatedStudent"`
}

// DeleteResult is the outcome of a successful delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// Students is the result of a ListQuery.
type Students struct {
	Students []Student `json:"students"`
	Count    int       `json:"count"`
}

package students

import (
	"strings"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	createCommandType = "CreateStudent"
	updateCommandType = "UpdateStudent"
	deleteCommandType = "DeleteStudent"
)

// CreateCommand represents the intent to register a student.
type CreateCommand struct {
	Name      string
	Address   string
	ContactNo string
	Faculty   string
	Semester  string
}

// BuildCreateCommand creates a new CreateCommand with trimmed fields.
func BuildCreateCommand(name, address, contactNo, faculty, semester string) CreateCommand {
	return CreateCommand{
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		ContactNo: strings.TrimSpace(contactNo),
		Faculty:   strings.TrimSpace(faculty),
		Semester:  strings.TrimSpace(semester),
	}
}

// CommandType returns the type identifier for this command.
func (c CreateCommand) CommandType() string {
	return createCommandType
}

// Patch holds the fields of an update, nil fields stay as they are.
type Patch struct {
	Name      *string
	Address   *string
	ContactNo *string
	Faculty   *string
	Semester  *string
}

// UpdateCommand represents the intent to change a student.
type UpdateCommand struct {
	StudentID core.StudentID
	Patch     Patch
}

// BuildUpdateCommand creates a new UpdateCommand.
func BuildUpdateCommand(studentID core.StudentID, patch Patch) UpdateCommand {
	return UpdateCommand{StudentID: studentID, Patch: patch}
}

// CommandType returns the type identifier for this command.
func (c UpdateCommand) CommandType() string {
	return updateCommandType
}

// DeleteCommand represents the intent to soft-delete a student.
type DeleteCommand struct {
	StudentID core.StudentID
}

// BuildDeleteCommand creates a new DeleteCommand.
func BuildDeleteCommand(studentID core.StudentID) DeleteCommand {
	return DeleteCommand{StudentID: studentID}
}

// CommandType returns the type identifier for this command.
func (c DeleteCommand) CommandType() string {
	return deleteCommandType
}

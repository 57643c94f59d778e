package authors

import (
	"strings"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	createCommandType = "CreateAuthor"
	updateCommandType = "UpdateAuthor"
	deleteCommandType = "DeleteAuthor"
)

// CreateCommand represents the intent to add an author.
type CreateCommand struct {
	Name string
}

// BuildCreateCommand creates a new CreateCommand.
func BuildCreateCommand(name string) CreateCommand {
	return CreateCommand{Name: strings.TrimSpace(name)}
}

// CommandType returns the type identifier for this command.
func (c CreateCommand) CommandType() string {
	return createCommandType
}

// UpdateCommand carries the fields to change, nil fields stay as they are.
type UpdateCommand struct {
	AuthorID core.AuthorID
	Name     *string
}

// BuildUpdateCommand creates a new UpdateCommand.
func BuildUpdateCommand(authorID core.AuthorID, name *string) UpdateCommand {
	return UpdateCommand{AuthorID: authorID, Name: name}
}

// CommandType returns the type identifier for this command.
func (c UpdateCommand) CommandType() string {
	return updateCommandType
}

// DeleteCommand represents the intent to soft-delete an author.
type DeleteCommand struct {
	AuthorID core.AuthorID
}

// BuildDeleteCommand creates a new DeleteCommand.
func BuildDeleteCommand(authorID core.AuthorID) DeleteCommand {
	return DeleteCommand{AuthorID: authorID}
}

// CommandType returns the type identifier for this command.
func (c DeleteCommand) CommandType() string {
	return deleteCommandType
}

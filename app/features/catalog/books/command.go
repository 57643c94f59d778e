package books

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	createCommandType = "CreateBook"
	updateCommandType = "UpdateBook"
	deleteCommandType = "DeleteBook"
)

// DefaultTotalCopies applies when a book is created without a number of copies.
const DefaultTotalCopies = 1

// CreateCommand represents the intent to add a book to the catalog.
type CreateCommand struct {
	Title           string
	AuthorID        core.AuthorID
	Publisher       string
	Barcode         string
	ISBN            string
	SubjectGenre    string
	PublicationDate *time.Time
	TotalCopies     int
}

// BuildCreateCommand creates a new CreateCommand. A nil totalCopies means DefaultTotalCopies.
func BuildCreateCommand(
	title string,
	authorID core.AuthorID,
	publisher string,
	barcode string,
	isbn string,
	subjectGenre string,
	publicationDate *time.Time,
	totalCopies *int,
) CreateCommand {

	copies := DefaultTotalCopies
	if totalCopies != nil {
		copies = *totalCopies
	}

	return CreateCommand{
		Title:           strings.TrimSpace(title),
		AuthorID:        authorID,
		Publisher:       strings.TrimSpace(publisher),
		Barcode:         strings.TrimSpace(barcode),
		ISBN:            strings.TrimSpace(isbn),
		SubjectGenre:    strings.TrimSpace(subjectGenre),
		PublicationDate: publicationDate,
		TotalCopies:     copies,
	}
}

// CommandType returns the type identifier for this command.
func (c CreateCommand) CommandType() string {
	return createCommandType
}

// Patch holds the fields of an update, nil fields stay as they are.
type Patch struct {
	Title           *string
	AuthorID        *core.AuthorID
	Publisher       *string
	Barcode         *string
	ISBN            *string
	SubjectGenre    *string
	PublicationDate *time.Time
	TotalCopies     *int

	// ClearPublicationDate removes a stored publication date. It cannot be combined with
	// PublicationDate.
	ClearPublicationDate bool
}

// UpdateCommand represents the intent to change a book.
type UpdateCommand struct {
	BookID core.BookID
	Patch  Patch
}

// BuildUpdateCommand creates a new UpdateCommand.
func BuildUpdateCommand(bookID core.BookID, patch Patch) UpdateCommand {
	return UpdateCommand{BookID: bookID, Patch: patch}
}

// CommandType returns the type identifier for this command.
func (c UpdateCommand) CommandType() string {
	return updateCommandType
}

// DeleteCommand represents the intent to soft-delete a book.
type DeleteCommand struct {
	BookID core.BookID
}

// BuildDeleteCommand creates a new DeleteCommand.
func BuildDeleteCommand(bookID core.BookID) DeleteCommand {
	return DeleteCommand{BookID: bookID}
}

// CommandType returns the type identifier for this command.
func (c DeleteCommand) CommandType() string {
	return deleteCommandType
}

func validateTotalCopies(total int, fields map[string][]string) {
	if total < 0 {
		fields["totalCopies"] = append(fields["totalCopies"], "totalCopies must not be negative")
	}
}

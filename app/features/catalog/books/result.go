package books

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Book is the shape in which books leave the application.
// AuthorName is empty when the author has been deleted since.
type Book struct {
	BookID          core.BookID   `json:"bookId"`
	Title           string        `json:"title"`
	AuthorID        core.AuthorID `json:"authorId"`
	AuthorName      string        `json:"authorName"`
	Publisher       string        `json:"publisher"`
	Barcode         string        `json:"barcode"`
	ISBN            string        `json:"isbn"`
	SubjectGenre    string        `json:"subjectGenre"`
	PublicationDate *time.Time    `json:"publicationDate"`
	TotalCopies     int           `json:"totalCopies"`
	AvailableCopies int           `json:"availableCopies"`
	IsAvailable     bool          `json:"isAvailable"`
}

func toBook(b librarystore.Book, authorName string) Book {
	return Book{
		BookID:          b.ID,
		Title:           b.Title,
		AuthorID:        b.AuthorID,
		AuthorName:      authorName,
		Publisher:       b.Publisher,
		Barcode:         b.Barcode,
		ISBN:            b.ISBN,
		SubjectGenre:    b.SubjectGenre,
		PublicationDate: b.PublicationDate,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		IsAvailable:     b.AvailableCopies > 0,
	}
}

// CreateResult is the outcome of a successful create.
type CreateResult struct {
	Message string      `json:"message"`
	BookID  core.BookID `json:"bookId"`
	Book    Book        `json:"book"`
}

// UpdateResult is the outcome of a successful update.
type UpdateResult struct {
	Message     string `json:"message"`
	UpdatedBook Book   `json:"updatedBook"`
}

// DeleteResult is the outcome of a successful delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// Books is the result of the list queries.
type Books struct {
	Books []Book `json:"books"`
	Count int    `json:"count"`
}

package authors

import (
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Author is the shape in which authors leave the application.
type Author struct {
	AuthorID   core.AuthorID `json:"authorId"`
	AuthorName string        `json:"authorName"`
}

func toAuthor(a librarystore.Author) Author {
	return Author{AuthorID: a.ID, AuthorName: a.Name}
}

// CreateResult is the outcome of a successful create.
type CreateResult struct {
	Message  string        `json:"message"`
	AuthorID core.AuthorID `json:"authorId"`
	Author   Author        `json:"author"`
}

// UpdateResult is the outcome of a successful update.
type UpdateResult struct {
	Message       string `json:"message"`
	UpdatedAuthor Author `json:"updatedAuthor"`
}

// DeleteResult is the outcome of a successful delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// Authors is the result of a ListQuery.
type Authors struct {
	Authors []Author `json:"authors"`
	Count   int      `json:"count"`
}

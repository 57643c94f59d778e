package api

import (
	"net/http"

	"github.com/AntonStoeckl/library-management-api/app/features/catalog/authors"
	"github.com/AntonStoeckl/library-management-api/app/features/catalog/books"
	"github.com/AntonStoeckl/library-management-api/app/features/catalog/students"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

func (s *Server) authorRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/authors", s.authenticated(handleCommand(s, s.handlers.CreateAuthor, http.StatusCreated,
		func(w http.ResponseWriter, r *http.Request) (authors.CreateCommand, error) {
			var req createAuthorRequest
			if err := decodeJSON(w, r, &req); err != nil {
				return authors.CreateCommand{}, err
			}

			return authors.BuildCreateCommand(req.AuthorName), nil
		},
	)))

	mux.Handle("GET /api/authors", s.authenticated(handleQuery(s, s.handlers.Authors,
		func(*http.Request) (authors.ListQuery, error) {
			return authors.ListQuery{}, nil
		},
	)))

	mux.Handle("GET /api/authors/{id}", s.authenticated(handleQuery(s, s.handlers.AuthorByID,
		func(r *http.Request) (authors.ByIDQuery, error) {
			id, err := pathID(r, "id")

			return authors.BuildByIDQuery(id), err
		},
	)))

	mux.Handle("PUT /api/authors/{id}", s.authenticated(handleCommand(s, s.handlers.UpdateAuthor, http.StatusOK,
		func(w http.ResponseWriter, r *http.Request) (authors.UpdateCommand, error) {
			id, err := pathID(r, "id")
			if err != nil {
				return authors.UpdateCommand{}, err
			}

			var req updateAuthorRequest
			if err = decodeJSON(w, r, &req); err != nil {
				return authors.UpdateCommand{}, err
			}

			return authors.BuildUpdateCommand(id, req.NewAuthorName), nil
		},
	)))

	mux.Handle("DELETE /api/authors/{id}", s.authenticated(handleCommand(s, s.handlers.DeleteAuthor, http.StatusOK,
		func(_ http.ResponseWriter, r *http.Request) (authors.DeleteCommand, error) {
			id, err := pathID(r, "id")

			return authors.BuildDeleteCommand(id), err
		},
	)))
}

func (s *Server) bookRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/books", s.authenticated(handleCommand(s, s.handlers.CreateBook, http.StatusCreated,
		func(w http.ResponseWriter, r *http.Request) (books.CreateCommand, error) {
			var req createBookRequest
			if err := decodeJSON(w, r, &req); err != nil {
				return books.CreateCommand{}, err
			}

			return books.BuildCreateCommand(
				req.Title,
				req.AuthorID,
				req.Publisher,
				req.Barcode,
				req.ISBN,
				req.SubjectGenre,
				req.PublicationDate,
				req.TotalCopies,
			), nil
		},
	)))

	mux.Handle("GET /api/books", s.authenticated(handleQuery(s, s.handlers.Books,
		func(*http.Request) (books.ListQuery, error) {
			return books.ListQuery{}, nil
		},
	)))

	mux.Handle("GET /api/books/{id}", s.authenticated(handleQuery(s, s.handlers.BookByID,
		func(r *http.Request) (books.ByIDQuery, error) {
			id, err := pathID(r, "id")

			return books.BuildByIDQuery(id), err
		},
	)))

	mux.Handle("GET /api/books/author/{authorId}", s.authenticated(handleQuery(s, s.handlers.BooksByAuthor,
		func(r *http.Request) (books.ByAuthorQuery, error) {
			id, err := pathID(r, "authorId")

			return books.BuildByAuthorQuery(id), err
		},
	)))

	mux.Handle("PUT /api/books/{id}", s.authenticated(handleCommand(s, s.handlers.UpdateBook, http.StatusOK,
		func(w http.ResponseWriter, r *http.Request) (books.UpdateCommand, error) {
			id, err := pathID(r, "id")
			if err != nil {
				return books.UpdateCommand{}, err
			}

			var req updateBookRequest
			if err = decodeJSON(w, r, &req); err != nil {
				return books.UpdateCommand{}, err
			}

			return books.BuildUpdateCommand(id, books.Patch{
				Title:           req.NewTitle,
				AuthorID:        (*core.AuthorID)(req.NewAuthorID),
				Publisher:       req.NewPublisher,
				Barcode:         req.NewBarcode,
				ISBN:            req.NewISBN,
				SubjectGenre:    req.NewSubjectGenre,
				PublicationDate: req.NewPublicationDate,
				TotalCopies:     req.NewTotalCopies,

				ClearPublicationDate: req.ClearPublicationDate,
			}), nil
		},
	)))

	mux.Handle("DELETE /api/books/{id}", s.authenticated(handleCommand(s, s.handlers.DeleteBook, http.StatusOK,
		func(_ http.ResponseWriter, r *http.Request) (books.DeleteCommand, error) {
			id, err := pathID(r, "id")

			return books.BuildDeleteCommand(id), err
		},
	)))
}

func (s *Server) studentRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/students", s.authenticated(handleCommand(s, s.handlers.CreateStudent, http.StatusCreated,
		func(w http.ResponseWriter, r *http.Request) (students.CreateCommand, error) {
			var req createStudentRequest
			if err := decodeJSON(w, r, &req); err != nil {
				return students.CreateCommand{}, err
			}

			return students.BuildCreateCommand(req.Name, req.Address, req.ContactNo, req.Faculty, req.Semester), nil
		},
	)))

	mux.Handle("GET /api/students", s.authenticated(handleQuery(s, s.handlers.Students,
		func(*http.Request) (students.ListQuery, error) {
			return students.ListQuery{}, nil
		},
	)))

	mux.Handle("GET /api/students/{id}", s.authenticated(handleQuery(s, s.handlers.StudentByID,
		func(r *http.Request) (students.ByIDQuery, error) {
			id, err := pathID(r, "id")

			return students.BuildByIDQuery(id), err
		},
	)))

	mux.Handle("PUT /api/students/{id}", s.authenticated(handleCommand(s, s.handlers.UpdateStudent, http.StatusOK,
		func(w http.ResponseWriter, r *http.Request) (students.UpdateCommand, error) {
			id, err := pathID(r, "id")
			if err != nil {
				return students.UpdateCommand{}, err
			}

			var req updateStudentRequest
			if err = decodeJSON(w, r, &req); err != nil {
				return students.UpdateCommand{}, err
			}

			return students.BuildUpdateCommand(id, students.Patch{
				Name:      req.NewName,
				Address:   req.NewAddress,
				ContactNo: req.NewContactNo,
				Faculty:   req.NewFaculty,
				Semester:  req.NewSemester,
			}), nil
		},
	)))

	mux.Handle("DELETE /api/students/{id}", s.authenticated(handleCommand(s, s.handlers.DeleteStudent, http.StatusOK,
		func(_ http.ResponseWriter, r *http.Request) (students.DeleteCommand, error) {
			id, err := pathID(r, "id")

			return students.BuildDeleteCommand(id), err
		},
	)))
}

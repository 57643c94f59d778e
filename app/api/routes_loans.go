package api

import (
	"net/http"

	"github.com/AntonStoeckl/library-management-api/app/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-management-api/app/features/command/deleteloan"
	"github.com/AntonStoeckl/library-management-api/app/features/command/returnbook"
	"github.com/AntonStoeckl/library-management-api/app/features/query/activeloans"
	"github.com/AntonStoeckl/library-management-api/app/features/query/loans"
	"github.com/AntonStoeckl/library-management-api/app/features/query/overdueloans"
)

func (s *Server) loanRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/loans/checkout", s.authenticated(handleCommand(s, s.handlers.CheckoutBook, http.StatusCreated,
		func(w http.ResponseWriter, r *http.Request) (checkoutbook.Command, error) {
			var req checkoutRequest
			if err := decodeJSON(w, r, &req); err != nil {
				return checkoutbook.Command{}, err
			}

			var borrowDays int
			if req.BorrowDays != nil {
				borrowDays = *req.BorrowDays
			}

			return checkoutbook.BuildCommand(req.BookID, req.StudentID, borrowDays, s.now()), nil
		},
	)))

	mux.Handle("POST /api/loans/return/{id}", s.authenticated(handleCommand(s, s.handlers.ReturnBook, http.StatusOK,
		func(_ http.ResponseWriter, r *http.Request) (returnbook.Command, error) {
			id, err := pathID(r, "id")

			return returnbook.BuildCommand(id, s.now()), err
		},
	)))

	mux.Handle("DELETE /api/loans/{id}", s.authenticated(handleCommand(s, s.handlers.DeleteLoan, http.StatusOK,
		func(_ http.ResponseWriter, r *http.Request) (deleteloan.Command, error) {
			id, err := pathID(r, "id")

			return deleteloan.BuildCommand(id), err
		},
	)))

	mux.Handle("GET /api/loans/active", s.authenticated(handleQuery(s, s.handlers.ActiveLoans,
		func(*http.Request) (activeloans.Query, error) {
			return activeloans.BuildQuery(s.now()), nil
		},
	)))

	mux.Handle("GET /api/loans/overdue", s.authenticated(handleQuery(s, s.handlers.OverdueLoans,
		func(*http.Request) (overdueloans.Query, error) {
			return overdueloans.BuildQuery(s.now()), nil
		},
	)))

	mux.Handle("GET /api/loans", s.authenticated(handleQuery(s, s.handlers.Loans,
		func(*http.Request) (loans.Query, error) {
			return loans.BuildQuery(s.now()), nil
		},
	)))

	mux.Handle("GET /api/loans/{id}", s.authenticated(handleQuery(s, s.handlers.LoanByID,
		func(r *http.Request) (loans.ByIDQuery, error) {
			id, err := pathID(r, "id")

			return loans.BuildByIDQuery(id, s.now()), err
		},
	)))

	mux.Handle("GET /api/loans/student/{studentId}", s.authenticated(handleQuery(s, s.handlers.Loans,
		func(r *http.Request) (loans.Query, error) {
			id, err := pathID(r, "studentId")

			return loans.BuildByStudentQuery(id, s.now()), err
		},
	)))

	mux.Handle("GET /api/loans/book/{bookId}", s.authenticated(handleQuery(s, s.handlers.Loans,
		func(r *http.Request) (loans.Query, error) {
			id, err := pathID(r, "bookId")

			return loans.BuildByBookQuery(id, s.now()), err
		},
	)))
}

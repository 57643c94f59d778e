package api

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-management-api/app/features/catalog/authors"
	"github.com/AntonStoeckl/library-management-api/app/features/catalog/books"
	"github.com/AntonStoeckl/library-management-api/app/features/catalog/students"
	"github.com/AntonStoeckl/library-management-api/app/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-management-api/app/features/command/deleteloan"
	"github.com/AntonStoeckl/library-management-api/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-management-api/app/features/command/returnbook"
	"github.com/AntonStoeckl/library-management-api/app/features/query/activeloans"
	"github.com/AntonStoeckl/library-management-api/app/features/query/authenticateuser"
	"github.com/AntonStoeckl/library-management-api/app/features/query/currentuser"
	"github.com/AntonStoeckl/library-management-api/app/features/query/loans"
	"github.com/AntonStoeckl/library-management-api/app/features/query/overdueloans"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/observable"
)

// Store is the union of the store operations of all use cases plus a health check.
type Store interface {
	authors.Store
	books.Store
	students.Store
	checkoutbook.Store
	returnbook.Store
	deleteloan.Store
	loans.Store
	registeruser.Store
	authenticateuser.Store
	currentuser.Store
	Ping(ctx context.Context) error
}

// TokenService issues tokens at login and verifies them on protected routes.
type TokenService interface {
	Issue(userID int64, username string) (jwtauth.Token, error)
	Verify(token string) (jwtauth.Claims, error)
}

// Instrumentation carries the optional observability collectors every handler is wrapped with.
// Nil fields disable the concern.
type Instrumentation struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// Handlers holds one handler per use case.
type Handlers struct {
	RegisterUser     shell.CommandHandler[registeruser.Command, registeruser.Result]
	AuthenticateUser shell.QueryHandler[authenticateuser.Query, authenticateuser.Result]
	CurrentUser      shell.QueryHandler[currentuser.Query, core.UserView]

	CreateAuthor shell.CommandHandler[authors.CreateCommand, authors.CreateResult]
	UpdateAuthor shell.CommandHandler[authors.UpdateCommand, authors.UpdateResult]
	DeleteAuthor shell.CommandHandler[authors.DeleteCommand, authors.DeleteResult]
	AuthorByID   shell.QueryHandler[authors.ByIDQuery, authors.Author]
	Authors      shell.QueryHandler[authors.ListQuery, authors.Authors]

	CreateBook    shell.CommandHandler[books.CreateCommand, books.CreateResult]
	UpdateBook    shell.CommandHandler[books.UpdateCommand, books.UpdateResult]
	DeleteBook    shell.CommandHandler[books.DeleteCommand, books.DeleteResult]
	BookByID      shell.QueryHandler[books.ByIDQuery, books.Book]
	Books         shell.QueryHandler[books.ListQuery, books.Books]
	BooksByAuthor shell.QueryHandler[books.ByAuthorQuery, books.Books]

	CreateStudent shell.CommandHandler[students.CreateCommand, students.CreateResult]
	UpdateStudent shell.CommandHandler[students.UpdateCommand, students.UpdateResult]
	DeleteStudent shell.CommandHandler[students.DeleteCommand, students.DeleteResult]
	StudentByID   shell.QueryHandler[students.ByIDQuery, students.Student]
	Students      shell.QueryHandler[students.ListQuery, students.Students]

	CheckoutBook shell.CommandHandler[checkoutbook.Command, checkoutbook.Result]
	ReturnBook   shell.CommandHandler[returnbook.Command, returnbook.Result]
	DeleteLoan   shell.CommandHandler[deleteloan.Command, deleteloan.Result]
	ActiveLoans  shell.QueryHandler[activeloans.Query, activeloans.ActiveLoans]
	OverdueLoans shell.QueryHandler[overdueloans.Query, overdueloans.OverdueLoans]
	Loans        shell.QueryHandler[loans.Query, loans.Loans]
	LoanByID     shell.QueryHandler[loans.ByIDQuery, core.LoanSummary]
}

// NewHandlers builds every use case handler on store and wraps it with the instrumentation.
func NewHandlers(store Store, tokens TokenService, in Instrumentation) (Handlers, error) {
	w := &wiring{in: in}

	h := Handlers{
		RegisterUser: observeCommand[registeruser.Command, registeruser.Result](
			w, registeruser.NewCommandHandler(store, tokens),
		),
		AuthenticateUser: observeQuery[authenticateuser.Query, authenticateuser.Result](
			w, authenticateuser.NewQueryHandler(store, tokens),
		),
		CurrentUser: observeQuery[currentuser.Query, core.UserView](
			w, currentuser.NewQueryHandler(store),
		),

		CreateAuthor: observeCommand[authors.CreateCommand, authors.CreateResult](
			w, authors.NewCreateHandler(store),
		),
		UpdateAuthor: observeCommand[authors.UpdateCommand, authors.UpdateResult](
			w, authors.NewUpdateHandler(store),
		),
		DeleteAuthor: observeCommand[authors.DeleteCommand, authors.DeleteResult](
			w, authors.NewDeleteHandler(store),
		),
		AuthorByID: observeQuery[authors.ByIDQuery, authors.Author](
			w, authors.NewByIDQueryHandler(store),
		),
		Authors: observeQuery[authors.ListQuery, authors.Authors](
			w, authors.NewListQueryHandler(store),
		),

		CreateBook: observeCommand[books.CreateCommand, books.CreateResult](
			w, books.NewCreateHandler(store),
		),
		UpdateBook: observeCommand[books.UpdateCommand, books.UpdateResult](
			w, books.NewUpdateHandler(store),
		),
		DeleteBook: observeCommand[books.DeleteCommand, books.DeleteResult](
			w, books.NewDeleteHandler(store),
		),
		BookByID: observeQuery[books.ByIDQuery, books.Book](
			w, books.NewByIDQueryHandler(store),
		),
		Books: observeQuery[books.ListQuery, books.Books](
			w, books.NewListQueryHandler(store),
		),
		BooksByAuthor: observeQuery[books.ByAuthorQuery, books.Books](
			w, books.NewByAuthorQueryHandler(store),
		),

		CreateStudent: observeCommand[students.CreateCommand, students.CreateResult](
			w, students.NewCreateHandler(store),
		),
		UpdateStudent: observeCommand[students.UpdateCommand, students.UpdateResult](
			w, students.NewUpdateHandler(store),
		),
		DeleteStudent: observeCommand[students.DeleteCommand, students.DeleteResult](
			w, students.NewDeleteHandler(store),
		),
		StudentByID: observeQuery[students.ByIDQuery, students.Student](
			w, students.NewByIDQueryHandler(store),
		),
		Students: observeQuery[students.ListQuery, students.Students](
			w, students.NewListQueryHandler(store),
		),

		CheckoutBook: observeCommand[checkoutbook.Command, checkoutbook.Result](
			w, checkoutbook.NewCommandHandler(store),
		),
		ReturnBook: observeCommand[returnbook.Command, returnbook.Result](
			w, returnbook.NewCommandHandler(store),
		),
		DeleteLoan: observeCommand[deleteloan.Command, deleteloan.Result](
			w, deleteloan.NewCommandHandler(store),
		),
		ActiveLoans: observeQuery[activeloans.Query, activeloans.ActiveLoans](
			w, activeloans.NewQueryHandler(store),
		),
		OverdueLoans: observeQuery[overdueloans.Query, overdueloans.OverdueLoans](
			w, overdueloans.NewQueryHandler(store),
		),
		Loans: observeQuery[loans.Query, loans.Loans](
			w, loans.NewQueryHandler(store),
		),
		LoanByID: observeQuery[loans.ByIDQuery, core.LoanSummary](
			w, loans.NewByIDQueryHandler(store),
		),
	}

	if w.err != nil {
		return Handlers{}, w.err
	}

	return h, nil
}

// wiring collects the errors of the observable decorators while the handlers are built.
type wiring struct {
	in  Instrumentation
	err error
}

func observeCommand[C shell.Command, R any](w *wiring, h shell.CommandHandler[C, R]) shell.CommandHandler[C, R] {
	wrapped, err := observable.NewCommandWrapper[C, R](
		h,
		observable.WithCommandMetrics[C, R](w.in.Metrics),
		observable.WithCommandTracing[C, R](w.in.Tracing),
		observable.WithCommandContextualLogging[C, R](w.in.ContextualLogger),
		observable.WithCommandLogging[C, R](w.in.Logger),
	)
	if err != nil {
		w.err = errors.Join(w.err, err)
		return h
	}

	return wrapped
}

func observeQuery[Q shell.Query, R any](w *wiring, h shell.QueryHandler[Q, R]) shell.QueryHandler[Q, R] {
	wrapped, err := observable.NewQueryWrapper[Q, R](
		h,
		observable.WithQueryMetrics[Q, R](w.in.Metrics),
		observable.WithQueryTracing[Q, R](w.in.Tracing),
		observable.WithQueryContextualLogging[Q, R](w.in.ContextualLogger),
		observable.WithQueryLogging[Q, R](w.in.Logger),
	)
	if err != nil {
		w.err = errors.Join(w.err, err)
		return h
	}

	return wrapped
}

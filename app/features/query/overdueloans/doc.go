// Package overdueloans implements the Overdue Loans query use case.
//
// The store returns the unreturned loans, the projection keeps the ones past due at the query's
// Now and orders them by days overdue, most overdue first.
package overdueloans

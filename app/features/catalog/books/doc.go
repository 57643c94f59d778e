// Package books implements the book catalog with its inventory counters.
//
// A new book starts with all of its copies available. Changing the total copies of a book keeps
// the copies on loan constant, so the total can never drop below the copies currently lent out.
package books

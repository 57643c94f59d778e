// Package checkoutbook implements the Check Out Book use case.
//
// A student borrows one copy of a book for a number of days (14 by default). The checks run in a
// fixed order: the book exists, a copy is available, the student exists and the student does not
// already hold an active loan for the book. It follows the Load-Decide-Write pattern with a pure
// Decide function and a CommandHandler that owns the store access and the retry loop.
//
// The write re-checks availability and the duplicate rule inside one transaction, so concurrent
// checkouts of the last copy cannot both succeed.
package checkoutbook

// Package returnbook implements the Return Book use case.
//
// Returning closes an active loan, stamps its return date and puts the copy back into inventory.
// The days overdue are computed from the due date before anything is written. A second return of
// the same loan is rejected and keeps the first return date.
package returnbook

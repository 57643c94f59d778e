// Package deleteloan implements the administrative Delete Loan use case.
//
// The loan is soft-deleted. A loan that is still active gives its copy back to the inventory in
// the same transaction, so the copies on loan always match the active loans.
package deleteloan

// Package loans implements the loan lookups: all loans, the loans of one student, the loans of
// one book and a single loan by id. Returned loans are included, deleted loans never are.
package loans

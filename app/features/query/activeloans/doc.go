// Package activeloans implements the Active Loans query use case.
//
// It lists every loan that is neither returned nor deleted, newest issue date first, with the
// overdue fields derived at the time of the query. The read may be served by a replica.
package activeloans

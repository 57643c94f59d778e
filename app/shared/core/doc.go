// Package core holds the pure domain logic of the library: the loan period and overdue math, the
// decision results of the command handlers, the result shapes shared by several features, and the
// AppError taxonomy every layer above the store speaks.
//
// Nothing in here performs I/O. The features combine these functions with the store in their
// handlers.
package core

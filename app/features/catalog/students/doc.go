// Package students implements the student registry: create, update, soft-delete and lookups.
// Student names are unique among students that are not deleted.
package students

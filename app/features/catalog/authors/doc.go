// Package authors implements the author catalog: create, rename, soft-delete and lookups.
//
// Author names are unique among authors that are not deleted. Renaming to the current name is
// allowed, renaming to the name of another author is a Conflict.
package authors

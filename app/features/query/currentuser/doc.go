// Package currentuser implements the query behind GET /api/users/me.
package currentuser

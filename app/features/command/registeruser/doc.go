// Package registeruser implements the Register User use case: a new API user is stored with a
// bcrypt password hash and receives an access token right away.
package registeruser

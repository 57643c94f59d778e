// Package authenticateuser implements the login use case.
//
// A username and password pair is checked against the stored bcrypt hash. On success the caller
// receives a signed access token, on any mismatch an Unauthorized error that does not reveal
// whether the username exists.
package authenticateuser

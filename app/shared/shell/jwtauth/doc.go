// Package jwtauth issues and verifies the HS256 access tokens of the library API.
package jwtauth

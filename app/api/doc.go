// Package api exposes the library use cases over HTTP.
//
// Routes are registered on a net/http ServeMux with method patterns. Every /api route except
// register and login requires a bearer token (or the token cookie). Errors leave the service as
// ErrorResponse documents whose status code follows the core.AppError kind.
package api

// Package testdoubles provides spies for the observability interfaces of librarystore.
//
// The spies record every call so tests can assert on log messages, metrics, and spans emitted by
// the store, the command and query handlers, and the HTTP layer without a telemetry backend.
package testdoubles

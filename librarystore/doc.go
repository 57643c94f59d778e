// Package librarystore defines the storage-facing contracts of the library management service.
//
// It holds the sentinel errors every storage engine reports, the consistency level that callers
// attach to a context to route reads between a primary database and a replica, and the
// dependency-free observability interfaces (Logger, ContextualLogger, MetricsCollector,
// TracingCollector) the engines and the application shell are instrumented with.
//
// The concrete relational engine lives in the sqlengine subpackage, the OpenTelemetry
// implementations of the observability interfaces in oteladapters.
package librarystore

// Package oteladapters provides OpenTelemetry implementations of the librarystore observability
// interfaces.
//
// The same adapters serve the store, the command and query handlers, and the HTTP layer:
//   - SlogBridgeLogger and OTelLogger implement librarystore.ContextualLogger
//   - MetricsCollector implements librarystore.ContextualMetricsCollector
//   - TracingCollector implements librarystore.TracingCollector
package oteladapters

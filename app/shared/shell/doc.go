// Package shell holds the infrastructure side shared by all library use cases: the handler
// contracts, the retry loop for transient storage conflicts and the observability helpers the
// handlers and their decorators use.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell

// Package slog provides logging decorators for schemascan services.
//
// Each decorator wraps a service, delegates every call and logs the
// operation with its duration and error once the call returns.
package slog

// Package executor defines the execution collaborator the template
// engine hands finished operation text to, plus an HTTP implementation
// of it. The engine performs no retries, timeouts, or cancellation of
// its own; those concerns live behind this interface.
package executor

import "context"

// Executor runs a complete GraphQL operation synchronously.
//
// Ordinary server-side failures (resolver errors, validation errors)
// are returned inside the ExecutionResult's error list, never as a Go
// error. The error return is reserved for transport-level failures
// where no result exists at all.
type Executor interface {
	Execute(ctx context.Context, query string) (*ExecutionResult, error)
}

// Func adapts a function to the Executor interface.
type Func func(ctx context.Context, query string) (*ExecutionResult, error)

func (f Func) Execute(ctx context.Context, query string) (*ExecutionResult, error) {
	return f(ctx, query)
}

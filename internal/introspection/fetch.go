package introspection

import (
	"context"
	"fmt"

	executor "github.com/autographql/autograph/internal/executor"
	schema "github.com/autographql/autograph/internal/schema"
)

// Fetch runs the introspection query through the executor and decodes
// the result. Server-side errors in the result abort the fetch: a
// schema cannot be built from a partial introspection payload.
func Fetch(ctx context.Context, exec executor.Executor) (*schema.Schema, error) {
	result, err := exec.Execute(ctx, Query)
	if err != nil {
		return nil, fmt.Errorf("introspect: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("introspect: %s", result.Errors[0].Message)
	}
	if result.Data == nil {
		return nil, schema.Errorf("introspection returned no data")
	}
	return Decode(result.Data)
}

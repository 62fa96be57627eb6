// Package reqid stamps each request with a process-unique ID so the
// event subscribers can correlate start and finish events.
package reqid

import (
	"context"
	"sync/atomic"
)

type key struct{}

var counter atomic.Int64

// NewContext returns a copy of parent carrying a fresh request ID,
// along with the generated ID.
func NewContext(parent context.Context) (context.Context, int64) {
	id := counter.Add(1)
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the request ID from ctx, reporting presence.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}

package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	N int
}

type otherEvent struct {
	S string
}

func TestPublishDispatchesByType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	Subscribe(func(_ context.Context, e testEvent) { got = append(got, e.N) })
	Subscribe(func(_ context.Context, e testEvent) { got = append(got, e.N*10) })
	Subscribe(func(_ context.Context, e otherEvent) { t.Errorf("unexpected dispatch: %v", e) })

	Publish(context.Background(), testEvent{N: 1})
	Publish(context.Background(), testEvent{N: 2})

	assert.Equal(t, []int{1, 10, 2, 20}, got)
}

func TestPublishWithoutBusIsNoop(t *testing.T) {
	Use(nil)
	assert.NotPanics(t, func() {
		Publish(context.Background(), testEvent{N: 1})
		Subscribe(func(context.Context, testEvent) {})
	})
}

func TestPublishPassesContext(t *testing.T) {
	Use(New())
	defer Use(nil)

	type ctxKey struct{}
	var got any
	Subscribe(func(ctx context.Context, _ testEvent) { got = ctx.Value(ctxKey{}) })

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	Publish(ctx, testEvent{})
	assert.Equal(t, "v", got)
}

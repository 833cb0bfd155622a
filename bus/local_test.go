package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	b := NewLocal()
	defer b.Close()

	var got []string
	sub, err := b.Subscribe(ctx, "tenant.join", func(_ context.Context, event string, data []byte) {
		got = append(got, event+":"+string(data))
	})
	assert.NoError(t, err)
	defer sub.Close()

	assert.NoError(t, b.Publish(ctx, "tenant.join", []byte("42")))
	assert.NoError(t, b.Publish(ctx, "other.event", []byte("x")))
	assert.Equal(t, []string{"tenant.join:42"}, got)
}

func TestLocalMultipleListeners(t *testing.T) {
	ctx := context.Background()
	b := NewLocal()
	defer b.Close()

	var first, second int
	_, err := b.Subscribe(ctx, "ev", func(context.Context, string, []byte) { first++ })
	assert.NoError(t, err)
	_, err = b.Subscribe(ctx, "ev", func(context.Context, string, []byte) { second++ })
	assert.NoError(t, err)

	assert.NoError(t, b.Publish(ctx, "ev", nil))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestLocalSubscriptionClose(t *testing.T) {
	ctx := context.Background()
	b := NewLocal()
	defer b.Close()

	var calls int
	sub, err := b.Subscribe(ctx, "ev", func(context.Context, string, []byte) { calls++ })
	assert.NoError(t, err)

	assert.NoError(t, b.Publish(ctx, "ev", nil))
	assert.NoError(t, sub.Close())
	assert.NoError(t, b.Publish(ctx, "ev", nil))
	assert.Equal(t, 1, calls)
}

func TestLocalClosedBus(t *testing.T) {
	ctx := context.Background()
	b := NewLocal()
	assert.NoError(t, b.Close())

	assert.ErrorIs(t, b.Publish(ctx, "ev", nil), ErrClosed)
	_, err := b.Subscribe(ctx, "ev", func(context.Context, string, []byte) {})
	assert.ErrorIs(t, err, ErrClosed)
}

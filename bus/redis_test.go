package bus

import (
	"context"
	"testing"
	"time"

	"github.com/agentuity/go-common/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisBus(t *testing.T) Bus {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	b := NewRedis(context.Background(), logger.NewTestLogger(), client)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestRedisPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	b := newTestRedisBus(t)

	received := make(chan string, 1)
	sub, err := b.Subscribe(ctx, "tenant.join", func(_ context.Context, event string, data []byte) {
		received <- event + ":" + string(data)
	})
	require.NoError(t, err)
	defer sub.Close()

	// Give the pub/sub goroutine a moment to establish.
	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, b.Publish(ctx, "tenant.join", []byte("42")))

	select {
	case got := <-received:
		assert.Equal(t, "tenant.join:42", got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestRedisSubscriptionClose(t *testing.T) {
	ctx := context.Background()
	b := newTestRedisBus(t)

	received := make(chan struct{}, 4)
	sub, err := b.Subscribe(ctx, "ev", func(context.Context, string, []byte) {
		received <- struct{}{}
	})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	assert.NoError(t, sub.Close())
	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, b.Publish(ctx, "ev", []byte("x")))

	select {
	case <-received:
		t.Fatal("received event on closed subscription")
	case <-time.After(200 * time.Millisecond):
	}
}

package bus

import (
	"context"
	"fmt"

	"github.com/agentuity/go-common/logger"
	"github.com/redis/go-redis/v9"
)

type redisSubscription struct {
	pubsub *redis.PubSub
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}

type redisBus struct {
	rdb    *redis.Client
	ctx    context.Context
	cancel context.CancelFunc
	log    logger.Logger
}

var _ Bus = (*redisBus)(nil)

// NewRedis returns a Bus over Redis pub/sub, for host applications whose
// lifecycle events cross process boundaries. The caller owns the
// redis.Client lifecycle.
func NewRedis(ctx context.Context, log logger.Logger, rdb *redis.Client) Bus {
	ctx, cancel := context.WithCancel(ctx)
	return &redisBus{
		rdb:    rdb,
		ctx:    ctx,
		cancel: cancel,
		log:    log.With(map[string]interface{}{"component": "bus"}),
	}
}

func (b *redisBus) Publish(ctx context.Context, event string, data []byte) error {
	if err := b.rdb.Publish(ctx, event, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *redisBus) Subscribe(ctx context.Context, event string, cb Callback) (Subscription, error) {
	pubsub := b.rdb.Subscribe(ctx, event)

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-b.ctx.Done():
				return
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				cb(ctx, msg.Channel, []byte(msg.Payload))
			}
		}
	}()

	return &redisSubscription{pubsub: pubsub}, nil
}

func (b *redisBus) Close() error {
	b.cancel()
	return nil
}

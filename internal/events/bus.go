package events

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"github.com/noteboard/noteboard/internal/logging"
)

// Bus is a thin pub/sub wrapper over Redis. Publishing is fire-and-forget:
// a publisher must not fail its own request because the bus is down, so
// callers log Publish errors instead of propagating them.
type Bus struct {
	rdb    *redis.Client
	logger logging.Logger
}

// NewBus connects to the Redis instance at addr.
func NewBus(addr string, logger logging.Logger) *Bus {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &Bus{rdb: rdb, logger: logger}
}

// Ping checks bus reachability.
func (b *Bus) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Publish marshals v as JSON and publishes it on channel.
func (b *Bus) Publish(ctx context.Context, channel string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, channel, payload).Err()
}

// Subscribe consumes channel until ctx is cancelled, invoking handler for
// every received payload. Handler errors are logged and consumption
// continues; a poisoned event must not wedge the stream.
func (b *Bus) Subscribe(ctx context.Context, channel string, handler func(ctx context.Context, payload []byte) error) error {
	sub := b.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	// Forces the subscription to be established before we report success.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := handler(ctx, []byte(msg.Payload)); err != nil {
				b.logger.Error(ctx, "event handler error", "channel", channel, "error", err.Error())
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close releases the underlying Redis connection.
func (b *Bus) Close() error {
	return b.rdb.Close()
}

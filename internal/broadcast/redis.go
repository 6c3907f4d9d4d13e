package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/threatlens/threatlens-api/internal/logging"
)

// RedisBroadcaster publishes events on a Redis pub/sub channel. Run relays
// the channel into the local hub, so each replica serves its own subscribers.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *logging.Logger
}

func NewRedisBroadcaster(client *redis.Client, channel string, hub *Hub, logger *logging.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger,
	}
}

// Broadcast publishes event to the channel
func (b *RedisBroadcaster) Broadcast(ctx context.Context, event Event) error {
	frame, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, frame).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Run subscribes to the channel and forwards every well-formed frame to the
// hub until ctx is cancelled
func (b *RedisBroadcaster) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	b.logger.Info("broadcast relay subscribed", "channel", b.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil || event.Name == "" {
				b.logger.Warn("discarding malformed broadcast frame", "channel", msg.Channel)
				continue
			}
			b.hub.fanout([]byte(msg.Payload))
		}
	}
}

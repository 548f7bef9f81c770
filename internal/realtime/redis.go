package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisChannel carries events between instances.
const RedisChannel = "crmboard:events"

// envelope is the wire form on the redis channel.
type envelope struct {
	Origin string `json:"origin"`
	Event  *Event `json:"event"`
}

// RedisRelay publishes local events to redis and feeds events published by
// other instances into the local hub.
type RedisRelay struct {
	client  redis.UniversalClient
	hub     *Hub
	channel string
	origin  string
}

func NewRedisRelay(client redis.UniversalClient, hub *Hub) *RedisRelay {
	return &RedisRelay{
		client:  client,
		hub:     hub,
		channel: RedisChannel,
		origin:  uuid.NewString(),
	}
}

// NewRedisClient connects to the redis URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (redis.UniversalClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// Publish delivers locally first, then to the other instances.
func (r *RedisRelay) Publish(ctx context.Context, event *Event) error {
	if err := r.hub.Publish(ctx, event); err != nil {
		return err
	}

	data, err := json.Marshal(envelope{Origin: r.origin, Event: event})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("publishing event to redis: %w", err)
	}
	return nil
}

// Run relays remote events into the hub until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", r.channel, err)
	}
	slog.InfoContext(ctx, "realtime relay subscribed", "channel", r.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := r.deliver(ctx, msg.Payload); err != nil {
				slog.WarnContext(ctx, "dropping relayed event", "error", err)
			}
		}
	}
}

// deliver hands a payload received from redis to the local hub, skipping
// events this instance published itself.
func (r *RedisRelay) deliver(ctx context.Context, payload string) error {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}
	if env.Event == nil {
		return fmt.Errorf("empty event from %s", env.Origin)
	}
	if env.Origin == r.origin {
		return nil
	}
	return r.hub.Publish(ctx, env.Event)
}

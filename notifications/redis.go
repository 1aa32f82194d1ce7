package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"food-delivery/metrics"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const redisChannelPrefix = "notifications:"

type envelope struct {
	Channel      string       `json:"channel"`
	Notification Notification `json:"notification"`
}

// RedisPublisher publishes notifications on Redis so that every instance's
// Relay can hand them to its local subscribers.
type RedisPublisher struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		breaker: metrics.NewCircuitBreaker("redis-notifications"),
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, n Notification) error {
	payload, err := json.Marshal(envelope{Channel: channel, Notification: n})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.client.Publish(ctx, redisChannelPrefix+channel, payload).Err()
	})
	if err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}

// Relay forwards notifications received from Redis to a local publisher,
// normally the WebSocket hub.
type Relay struct {
	client     *redis.Client
	target     Publisher
	subscribed atomic.Bool
	minBackoff time.Duration
	maxBackoff time.Duration
	run        func(context.Context) error
}

func NewRelay(client *redis.Client, target Publisher) *Relay {
	r := &Relay{
		client:     client,
		target:     target,
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
	r.run = r.Run
	return r
}

// Connected reports whether the relay currently holds a Redis subscription.
func (r *Relay) Connected() bool {
	return r.subscribed.Load()
}

// Run blocks until ctx is cancelled or the subscription closes.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.PSubscribe(ctx, redisChannelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe notifications: %w", err)
	}
	r.subscribed.Store(true)
	defer r.subscribed.Store(false)
	log.Info("Notification relay subscribed to Redis")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.forward(ctx, msg.Payload)
		}
	}
}

// Supervise keeps the relay subscribed until ctx is done, resubscribing with
// exponential backoff whenever Run returns.
func (r *Relay) Supervise(ctx context.Context) error {
	delay := r.minBackoff
	for {
		started := time.Now()
		err := r.run(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Since(started) > r.maxBackoff {
			delay = r.minBackoff
		}

		log.WithError(err).WithField("retry_in", delay.String()).Warn("Notification relay stopped, resubscribing")
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, r.maxBackoff)
	}
}

// RelayedPublisher publishes through Redis while the relay holds its
// subscription, and straight to the local hub otherwise so that this
// instance's subscribers keep receiving events during a Redis outage.
type RelayedPublisher struct {
	remote Publisher
	local  Publisher
	relay  interface{ Connected() bool }
}

func NewRelayedPublisher(remote, local Publisher, relay interface{ Connected() bool }) *RelayedPublisher {
	return &RelayedPublisher{remote: remote, local: local, relay: relay}
}

func (p *RelayedPublisher) Publish(ctx context.Context, channel string, n Notification) error {
	if p.relay.Connected() {
		return p.remote.Publish(ctx, channel, n)
	}
	return p.local.Publish(ctx, channel, n)
}

func (r *Relay) forward(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		log.WithError(err).Warn("Discarding malformed notification from Redis")
		return
	}
	if err := r.target.Publish(ctx, env.Channel, env.Notification); err != nil {
		log.WithError(err).WithField("channel", env.Channel).Warn("Failed to forward notification")
	}
}

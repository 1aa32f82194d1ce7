package notifications

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu       sync.Mutex
	channels []string
}

func (p *capturePublisher) Publish(_ context.Context, channel string, _ Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	return nil
}

type relayState bool

func (s relayState) Connected() bool { return bool(s) }

func TestSuperviseResubscribesAfterFailure(t *testing.T) {
	relay := &Relay{minBackoff: time.Millisecond, maxBackoff: 5 * time.Millisecond}

	var attempts atomic.Int32
	relay.run = func(ctx context.Context) error {
		if attempts.Add(1) < 3 {
			return errors.New("subscribe notifications: connection reset")
		}
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Supervise(ctx) }()

	assert.Eventually(t, func() bool { return attempts.Load() == 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Supervise did not return after cancellation")
	}
	assert.Equal(t, int32(3), attempts.Load())
}

func TestSuperviseStopsDuringBackoff(t *testing.T) {
	relay := &Relay{minBackoff: time.Hour, maxBackoff: time.Hour}
	relay.run = func(context.Context) error { return errors.New("redis down") }

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, relay.Supervise(ctx), context.DeadlineExceeded)
}

func TestRelayedPublisherFallsBackToLocal(t *testing.T) {
	remote := &capturePublisher{}
	local := &capturePublisher{}
	ctx := context.Background()

	up := NewRelayedPublisher(remote, local, relayState(true))
	require.NoError(t, up.Publish(ctx, "order:1", Notification{}))

	down := NewRelayedPublisher(remote, local, relayState(false))
	require.NoError(t, down.Publish(ctx, "order:2", Notification{}))

	assert.Equal(t, []string{"order:1"}, remote.channels)
	assert.Equal(t, []string{"order:2"}, local.channels)
}

func TestNewRelayStartsDisconnected(t *testing.T) {
	relay := NewRelay(nil, &capturePublisher{})
	assert.False(t, relay.Connected())
	assert.NotNil(t, relay.run)
}

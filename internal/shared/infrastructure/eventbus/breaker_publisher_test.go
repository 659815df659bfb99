package eventbus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/eventbus"
)

type stubPublisher struct {
	err    error
	calls  int
	closed bool
}

func (p *stubPublisher) Publish(context.Context, string, []byte) error {
	p.calls++
	return p.err
}

func (p *stubPublisher) Close() error {
	p.closed = true
	return nil
}

func TestBreakerPublisher_PassesThroughWhileClosed(t *testing.T) {
	next := &stubPublisher{}
	pub := eventbus.NewBreakerPublisher(next, eventbus.DefaultBreakerConfig(), discardLogger())

	require.NoError(t, pub.Publish(context.Background(), "facilities.gym.created", []byte(`{}`)))

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, gobreaker.StateClosed, pub.State())
}

func TestBreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	brokerDown := errors.New("connection refused")
	next := &stubPublisher{err: brokerDown}
	var transitions []gobreaker.State
	cfg := eventbus.BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Timeout:          time.Hour,
		FailureThreshold: 3,
		OnStateChange: func(_ string, _, to gobreaker.State) {
			transitions = append(transitions, to)
		},
	}
	pub := eventbus.NewBreakerPublisher(next, cfg, discardLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, pub.Publish(ctx, "training.session.scheduled", nil), brokerDown)
	}

	err := pub.Publish(ctx, "training.session.scheduled", nil)
	assert.ErrorIs(t, err, eventbus.ErrPublisherUnavailable)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, gobreaker.StateOpen, pub.State())
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)
}

func TestBreakerPublisher_Close(t *testing.T) {
	next := &stubPublisher{}
	pub := eventbus.NewBreakerPublisher(next, eventbus.DefaultBreakerConfig(), nil)

	require.NoError(t, pub.Close())
	assert.True(t, next.closed)
}

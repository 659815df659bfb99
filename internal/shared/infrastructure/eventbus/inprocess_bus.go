package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// InProcessEventBus delivers envelopes synchronously to consumers in the
// same process. It stands in for the broker in local mode, where the CLI
// drains the outbox itself.
type InProcessEventBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	mu       sync.Mutex
}

func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{registry: NewConsumerRegistry(logger), logger: logger}
}

func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes the envelope and dispatches it under the bus lock, so
// consumers see one event at a time. Undecodable envelopes and consumer
// failures are logged and swallowed: the outbox would otherwise retry an
// event that the healthy consumers already handled.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := &ConsumedEvent{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.Error("dropping undecodable event", "routing_key", routingKey, "error", err)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	err := b.registry.Dispatch(ctx, event)
	log := b.logger.With(
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		log.Error("event dispatch failed", "error", err)
		return nil
	}
	log.Debug("event dispatched")
	return nil
}

func (b *InProcessEventBus) Close() error {
	return nil
}

// Registry exposes the consumers registered on the bus.
func (b *InProcessEventBus) Registry() *ConsumerRegistry {
	return b.registry
}

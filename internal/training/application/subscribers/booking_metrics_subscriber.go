package subscribers

import (
	"context"
	"log/slog"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/eventbus"
	"github.com/Flinnker/Gym/internal/training/domain"
	"github.com/Flinnker/Gym/pkg/observability"
)

// BookingMetricsSubscriber turns training session events into booking
// counters.
type BookingMetricsSubscriber struct {
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewBookingMetricsSubscriber creates a new booking metrics subscriber.
func NewBookingMetricsSubscriber(metrics observability.Metrics, logger *slog.Logger) *BookingMetricsSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &BookingMetricsSubscriber{metrics: metrics, logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (s *BookingMetricsSubscriber) EventTypes() []string {
	return []string{"training.session.*"}
}

// Handle counts the event.
func (s *BookingMetricsSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	s.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))

	switch event.RoutingKey {
	case domain.RoutingKeySessionScheduled:
		var payload domain.SessionScheduled
		if err := event.DecodePayload(&payload); err != nil {
			return err
		}
		s.metrics.Counter(observability.MetricSessionsScheduled, 1)
		s.metrics.Histogram(observability.MetricSessionSize, float64(payload.SessionSize))
	case domain.RoutingKeySessionCanceled:
		s.metrics.Counter(observability.MetricSessionsCanceled, 1)
	case domain.RoutingKeySpotReserved:
		return s.reservation(event, observability.MetricReservations)
	case domain.RoutingKeyReservationCanceled:
		return s.reservation(event, observability.MetricReservationsCanceled)
	default:
		s.logger.DebugContext(ctx, "booking metrics ignore event", "routing_key", event.RoutingKey)
	}
	return nil
}

func (s *BookingMetricsSubscriber) reservation(event *eventbus.ConsumedEvent, counter string) error {
	var payload domain.ReservationChanged
	if err := event.DecodePayload(&payload); err != nil {
		return err
	}
	s.metrics.Counter(counter, 1)
	if payload.AvailableSpots == 0 {
		s.metrics.Counter(observability.MetricSessionsFull, 1)
	}
	return nil
}

package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const (
	correlationIDCtxKey contextKey = iota
	requestIDCtxKey
	actorIDCtxKey
	operationCtxKey
)

// Log attribute keys added by the context-aware handler.
const (
	CorrelationIDKey = "correlation_id"
	RequestIDKey     = "request_id"
	ActorIDKey       = "actor_id"
)

func valueOf[T any](ctx context.Context, key contextKey) T {
	var zero T
	if ctx == nil {
		return zero
	}
	if v, ok := ctx.Value(key).(T); ok {
		return v
	}
	return zero
}

// WithCorrelationID stores id, or a fresh UUID when id is empty. Domain
// events raised while handling the request carry the same correlation id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationIDCtxKey, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	return valueOf[string](ctx, correlationIDCtxKey)
}

// WithRequestID stores id, or a fresh UUID when id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDCtxKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	return valueOf[string](ctx, requestIDCtxKey)
}

// WithActorID records the administrator issuing the current command.
func WithActorID(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorIDCtxKey, actorID)
}

// ActorIDFromContext returns the actor stored by WithActorID, or uuid.Nil.
func ActorIDFromContext(ctx context.Context) uuid.UUID {
	return valueOf[uuid.UUID](ctx, actorIDCtxKey)
}

// WithOperation names the command being handled.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationCtxKey, operation)
}

func OperationFromContext(ctx context.Context) string {
	return valueOf[string](ctx, operationCtxKey)
}

// NewRequestContext starts a request with a fresh request id. The correlation
// id is inherited when given.
func NewRequestContext(ctx context.Context, correlationID string) context.Context {
	return WithCorrelationID(WithRequestID(ctx, ""), correlationID)
}

package application

import "context"

// Command changes state. CommandName is the snake_case name used to tag
// logs and metrics, e.g. "reserve_spot".
type Command interface {
	CommandName() string
}

// CommandHandler handles one command type and returns its result, usually
// the id of a created aggregate.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// VoidCommandHandler handles a command that produces no result.
type VoidCommandHandler[C Command] interface {
	Handle(ctx context.Context, cmd C) error
}

// Query reads state without raising events.
type Query interface {
	QueryName() string
}

// QueryHandler handles one query type.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

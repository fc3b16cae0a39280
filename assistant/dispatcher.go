package assistant

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoHandler is returned when a request resolves to an intent the
// dispatcher has no handler for.
var ErrNoHandler = errors.New("no handler for intent")

// Handlers holds the operation callbacks a Dispatcher routes to.
// A nil handler makes its intent fail with ErrNoHandler.
type Handlers struct {
	Search func(ctx context.Context, request Request) error
	Upload func(ctx context.Context, request Request) error
	List   func(ctx context.Context, request Request) error
	Help   func(ctx context.Context, request Request) error
}

// Dispatcher classifies inputs and routes them to handlers.
type Dispatcher struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given handlers.
func NewDispatcher(handlers Handlers) *Dispatcher {
	return &Dispatcher{
		handlers: handlers,
		logger:   slog.Default().With("component", "assistant"),
	}
}

// Dispatch classifies the input and invokes the matching handler.
func (d *Dispatcher) Dispatch(ctx context.Context, input string) error {
	request := Classify(input)
	d.logger.Debug("dispatching request", "intent", request.Intent.String())

	handler := d.handlerFor(request.Intent)
	if handler == nil {
		return ErrNoHandler
	}
	return handler(ctx, request)
}

func (d *Dispatcher) handlerFor(intent Intent) func(context.Context, Request) error {
	switch intent {
	case IntentSearch:
		return d.handlers.Search
	case IntentUpload:
		return d.handlers.Upload
	case IntentList:
		return d.handlers.List
	case IntentHelp:
		return d.handlers.Help
	default:
		return nil
	}
}

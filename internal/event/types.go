package event

import "context"

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes a payload emitted on the handler's topic.
	// The payload is type-erased; handlers should type-assert.
	Handle(ctx context.Context, payload any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, payload any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, payload any) error {
	return f(ctx, payload)
}

// Notification is the payload of the four severity topics.
type Notification struct {
	Message string `json:"message"`
}

// Envelope is delivered to wildcard handlers.
type Envelope struct {
	// Topic is the topic the payload was emitted on.
	Topic Topic

	// Payload is the emitted value.
	Payload any
}

// PanicHandler is called when a handler panics.
type PanicHandler func(topic Topic, payload any, recovered any, stack []byte)

// Stats contains emitter counters.
type Stats struct {
	// Emits is the number of Emit calls.
	Emits uint64

	// Delivered is the number of handler invocations that succeeded.
	Delivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// Subscriptions is the current number of registrations.
	Subscriptions int
}

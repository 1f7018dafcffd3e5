package event

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/dassana-io/web-utils/internal/event/dispatch"
)

// Emitter is a synchronous publish/subscribe bus.
// It is safe for concurrent use.
type Emitter struct {
	mu   sync.RWMutex
	subs map[Topic][]*Subscription

	nextID atomic.Uint64
	config config

	emits         atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// New creates an emitter with the given options.
func New(opts ...Option) *Emitter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Emitter{
		subs:   make(map[Topic][]*Subscription),
		config: cfg,
	}
}

// On registers handler for every future emit on t.
// Registering the same handler twice makes it run twice per emit.
func (e *Emitter) On(t Topic, handler Handler) (*Subscription, error) {
	return e.add(t, handler, false)
}

// OnFunc is a convenience method for registering a function handler.
func (e *Emitter) OnFunc(t Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return e.add(t, fn, false)
}

// Once registers handler for the next emit on t only.
func (e *Emitter) Once(t Topic, handler Handler) (*Subscription, error) {
	return e.add(t, handler, true)
}

// OnPayload registers a handler that receives payloads of type T.
// Payloads of other types are ignored.
func OnPayload[T any](e *Emitter, t Topic, fn func(ctx context.Context, payload T) error) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return e.add(t, HandlerFunc(func(ctx context.Context, payload any) error {
		if env, ok := payload.(Envelope); ok {
			payload = env.Payload
		}
		if p, ok := payload.(T); ok {
			return fn(ctx, p)
		}
		return nil
	}), false)
}

func (e *Emitter) add(t Topic, handler Handler, once bool) (*Subscription, error) {
	if t == "" {
		return nil, ErrInvalidTopic
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := newSubscription(e.nextID.Add(1), t, handler, once, e)

	e.mu.Lock()
	e.subs[t] = append(e.subs[t], sub)
	e.mu.Unlock()

	return sub, nil
}

// Off removes the registration sub from topic t.
// Removing a subscription that is not registered on t is a no-op.
// Once Off returns the handler is not invoked again, including by an emit
// already in progress.
func (e *Emitter) Off(t Topic, sub *Subscription) {
	if sub == nil || sub.topic != t {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.subs[t]
	for i, s := range subs {
		if s != sub {
			continue
		}
		sub.cancel()
		// Copy so snapshots taken by running emits are not modified.
		next := make([]*Subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(e.subs, t)
		} else {
			e.subs[t] = next
		}
		return
	}
}

// Emit invokes every handler registered on t, in registration order, with
// payload, followed by the wildcard handlers. Handlers registered during
// the emit are not invoked by it. A handler error or panic does not stop
// delivery; all failures are returned together.
func (e *Emitter) Emit(ctx context.Context, t Topic, payload any) error {
	if t == "" {
		return ErrInvalidTopic
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	e.emits.Add(1)

	e.mu.RLock()
	direct := e.subs[t]
	var wildcard []*Subscription
	if t != TopicAll {
		wildcard = e.subs[TopicAll]
	}
	e.mu.RUnlock()

	if len(direct) == 0 && len(wildcard) == 0 {
		return nil
	}

	var result *multierror.Error
	for _, sub := range direct {
		if err := e.deliver(ctx, t, sub, payload); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if len(wildcard) > 0 {
		env := Envelope{Topic: t, Payload: payload}
		for _, sub := range wildcard {
			if err := e.deliver(ctx, t, sub, env); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	return result.ErrorOrNil()
}

func (e *Emitter) deliver(ctx context.Context, t Topic, sub *Subscription, payload any) error {
	if !sub.IsActive() {
		return nil
	}
	if sub.once {
		if !sub.cancel() {
			return nil
		}
		e.Off(sub.topic, sub)
	}

	res := dispatch.Call(ctx, payload, sub.handler)
	switch {
	case res.Skipped:
		return res.Error
	case res.Panicked:
		e.handlerPanics.Add(1)
		e.config.logger.Error().
			Str("topic", t.String()).
			Uint64("subscription", sub.id).
			Interface("panic", res.PanicValue).
			Msg("event handler panicked")
		if h := e.config.panicHandler; h != nil {
			func() {
				defer func() { _ = recover() }()
				h(t, payload, res.PanicValue, res.PanicStack)
			}()
		}
		return &PanicError{
			SubscriptionID: sub.id,
			Topic:          t,
			Value:          res.PanicValue,
			Stack:          string(res.PanicStack),
		}
	case res.Error != nil:
		e.handlerErrors.Add(1)
		e.config.logger.Warn().
			Err(res.Error).
			Str("topic", t.String()).
			Uint64("subscription", sub.id).
			Msg("event handler failed")
		return &HandlerError{SubscriptionID: sub.id, Topic: t, Err: res.Error}
	default:
		e.delivered.Add(1)
		return nil
	}
}

// EmitNotification emits Notification{Message: message} on the severity's
// channel.
func (e *Emitter) EmitNotification(ctx context.Context, severity Severity, message string) error {
	if !severity.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSeverity, string(severity))
	}
	return e.Emit(ctx, severity.Topic(), Notification{Message: message})
}

// Clear drops every registration on every topic.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, subs := range e.subs {
		for _, s := range subs {
			s.cancel()
		}
	}
	e.subs = make(map[Topic][]*Subscription)
}

// Topics returns the topics with at least one registration, sorted.
func (e *Emitter) Topics() []Topic {
	e.mu.RLock()
	defer e.mu.RUnlock()

	topics := make([]Topic, 0, len(e.subs))
	for t := range e.subs {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i] < topics[j] })
	return topics
}

// Count returns the number of registrations on t.
func (e *Emitter) Count(t Topic) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs[t])
}

// Stats returns current emitter counters.
func (e *Emitter) Stats() Stats {
	e.mu.RLock()
	n := 0
	for _, subs := range e.subs {
		n += len(subs)
	}
	e.mu.RUnlock()

	return Stats{
		Emits:         e.emits.Load(),
		Delivered:     e.delivered.Load(),
		HandlerErrors: e.handlerErrors.Load(),
		HandlerPanics: e.handlerPanics.Load(),
		Subscriptions: n,
	}
}

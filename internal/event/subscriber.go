package event

import (
	"context"
	"sync"
)

// Subscriber groups subscriptions that share a lifetime, such as a view
// that registers handlers when mounted and drops them when unmounted.
type Subscriber struct {
	emitter       *Emitter
	subscriptions []*Subscription
	mu            sync.Mutex
	closed        bool
}

// NewSubscriber creates a new Subscriber wrapping the given emitter.
func NewSubscriber(e *Emitter) *Subscriber {
	return &Subscriber{emitter: e}
}

// On registers handler on t and tracks the subscription for Close.
func (s *Subscriber) On(t Topic, handler Handler) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSubscriberClosed
	}

	sub, err := s.emitter.On(t, handler)
	if err != nil {
		return nil, err
	}
	s.subscriptions = append(s.subscriptions, sub)
	return sub, nil
}

// OnFunc registers a function handler.
func (s *Subscriber) OnFunc(t Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return s.On(t, fn)
}

// SubscribePayload registers a typed payload handler on s.
func SubscribePayload[T any](s *Subscriber, t Topic, fn func(ctx context.Context, payload T) error) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return s.On(t, HandlerFunc(func(ctx context.Context, payload any) error {
		if env, ok := payload.(Envelope); ok {
			payload = env.Payload
		}
		if p, ok := payload.(T); ok {
			return fn(ctx, p)
		}
		return nil
	}))
}

// Off removes a specific subscription.
func (s *Subscriber) Off(sub *Subscription) {
	if sub == nil {
		return
	}

	s.mu.Lock()
	for i, tracked := range s.subscriptions {
		if tracked == sub {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.emitter.Off(sub.Topic(), sub)
}

// Count returns the number of tracked subscriptions.
func (s *Subscriber) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscriptions)
}

// Close removes every tracked subscription. Further registrations fail
// with ErrSubscriberClosed.
func (s *Subscriber) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subscriptions
	s.subscriptions = nil
	s.mu.Unlock()

	for _, sub := range subs {
		s.emitter.Off(sub.Topic(), sub)
	}
}

// IsClosed reports whether Close has been called.
func (s *Subscriber) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

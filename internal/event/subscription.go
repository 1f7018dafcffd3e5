package event

import "sync/atomic"

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStateCancelled means the subscription has been removed.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is the handle returned when a handler is registered.
// It stands for the handler reference: removing the subscription removes
// exactly that registration, even when the same handler was registered
// more than once.
type Subscription struct {
	id      uint64
	topic   Topic
	handler Handler
	once    bool
	state   atomic.Int32
	emitter *Emitter
}

func newSubscription(id uint64, t Topic, h Handler, once bool, e *Emitter) *Subscription {
	s := &Subscription{
		id:      id,
		topic:   t,
		handler: h,
		once:    once,
		emitter: e,
	}
	s.state.Store(int32(SubscriptionStateActive))
	return s
}

// ID returns the subscription ID.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// State returns the current subscription state.
func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription still receives events.
func (s *Subscription) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// Unsubscribe removes the subscription from its emitter.
// Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.emitter == nil {
		return
	}
	s.emitter.Off(s.topic, s)
}

// cancel marks the subscription cancelled and reports whether this call
// did the transition.
func (s *Subscription) cancel() bool {
	return s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStateCancelled))
}

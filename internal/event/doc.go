// Package event provides the in-process emitter used for cross-component
// signaling.
//
// Producers of state changes (a settings screen switching theme, the API
// layer reporting a failed request, the session expiring) emit a payload on
// a named topic. Consumers register handlers for the topics they care about
// without sharing an owner in the component tree.
//
// # Delivery
//
// Emit is synchronous. Handlers run in the caller's goroutine, one after the
// other, in registration order. The handler list is copied when Emit starts,
// so a handler that registers or removes other handlers does not disturb the
// delivery in progress; a subscription removed mid-emit is skipped as soon as
// Off returns. Each handler runs in isolation: an error or a panic is
// recorded and delivery continues with the next handler. Emit returns the
// collected failures.
//
// # Topics
//
// Topics are plain strings. The package defines the topics shared by the
// application suite (notification severities, drawer and navigation events,
// logout, themeUpdated). The wildcard topic "*" receives every emit wrapped
// in an Envelope.
//
// # Lifecycle
//
// An Emitter is constructed explicitly and passed to its consumers, directly
// or through a context (see NewContext). There is no package-level instance.
// Components that subscribe to several topics use a Subscriber so all their
// registrations are released together when the component goes away:
//
//	sub := event.NewSubscriber(em)
//	defer sub.Close()
//
//	sub.On(event.TopicThemeUpdated, event.HandlerFunc(func(ctx context.Context, p any) error {
//	    ...
//	}))
package event

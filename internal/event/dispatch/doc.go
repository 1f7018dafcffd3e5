// Package dispatch calls event handlers in isolation.
//
// Emitters and windows deliver synchronously, one handler after another.
// A handler that fails or panics must not stop the ones registered after
// it, so every call goes through Call, which turns a panic into a Result
// carrying the recovered value and stack:
//
//	res := dispatch.Call(ctx, payload, handler)
//	if res.Panicked {
//	    logger.Error().Interface("panic", res.PanicValue).Msg("handler panicked")
//	}
package dispatch

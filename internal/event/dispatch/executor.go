package dispatch

import (
	"context"
	"runtime/debug"
)

// Handler receives one delivered payload. It matches event.Handler, which
// this package cannot import.
type Handler interface {
	Handle(ctx context.Context, payload any) error
}

// Result is the outcome of one Call.
type Result struct {
	// Error is the handler's error, or the context error when Skipped.
	Error error

	// Skipped is set when ctx was done before the handler ran.
	Skipped bool

	Panicked   bool
	PanicValue any
	PanicStack []byte
}

// Call runs h with payload unless ctx is already done. A panic in h is
// recovered into the Result.
func Call(ctx context.Context, payload any, h Handler) (res Result) {
	if err := ctx.Err(); err != nil {
		return Result{Error: err, Skipped: true}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Panicked: true, PanicValue: r, PanicStack: debug.Stack()}
		}
	}()

	res.Error = h.Handle(ctx, payload)
	return res
}

package event

import (
	"context"

	"github.com/dassana-io/web-utils/internal/ctxkey"
)

var emitterKey = ctxkey.New[*Emitter]("event.Emitter")

// NewContext returns a copy of ctx carrying e.
func NewContext(ctx context.Context, e *Emitter) context.Context {
	return emitterKey.With(ctx, e)
}

// FromContext returns the emitter stored in ctx.
func FromContext(ctx context.Context) (*Emitter, error) {
	return emitterKey.From(ctx)
}

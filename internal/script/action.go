package script

import (
	"context"
	"fmt"

	"github.com/dassana-io/web-utils/internal/input/keymap"
)

// Resolver returns a keymap resolver that runs script bindings on this
// engine and hands every other binding to next. Scripts are compiled at
// bind time so syntax errors fail the bind. Run errors are logged.
func (e *Engine) Resolver(ctx context.Context, next keymap.Resolver) keymap.Resolver {
	return func(b keymap.Binding) (func(), error) {
		if b.Action != keymap.ActionScript {
			if next == nil {
				return nil, fmt.Errorf("%w: %s", keymap.ErrUnknownAction, b.Action)
			}
			return next(b)
		}

		chunk, err := Compile(b.Keys, b.Script)
		if err != nil {
			return nil, err
		}
		return func() {
			if err := e.Exec(ctx, chunk); err != nil {
				e.logger.Error().Err(err).Str("keys", b.Keys).Msg("script action failed")
			}
		}, nil
	}
}

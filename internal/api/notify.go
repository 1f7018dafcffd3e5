package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dassana-io/web-utils/internal/event"
)

// HandleError announces a failed response as an error notification. The
// message is the body's msg, falling back to its key and then the status
// text. Errors without a response (network failures, cancellation) are
// left to the caller and nothing is emitted.
func HandleError(ctx context.Context, err error, e *event.Emitter) error {
	var re *ResponseError
	if !errors.As(err, &re) {
		return nil
	}

	msg := re.Message()
	if msg == "" {
		msg = http.StatusText(re.StatusCode)
	}
	return e.EmitNotification(ctx, event.SeverityError, msg)
}

package capability

import (
	"context"

	"github.com/raphi011/catalyst/internal/log"
)

type logFunc func(l *log.Logger, msg string, keyvals ...any)

// logWith never fails; every argument is formatted into the message.
func (h *Host) logWith(fn logFunc) Handler {
	return func(_ context.Context, args Args) (any, error) {
		fn(h.logger(), args.Join())
		return nil, nil
	}
}

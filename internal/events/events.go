// Package events describes audit events raised by the identity and
// provisioning workflows. Events are written to the structured log under
// the "event" key.
package events

import (
	"context"
	"log/slog"

	"collegeconnect/internal/observability/middleware"
)

type Event interface {
	Name() string
}

// Emit logs e with the request and trace ids found in ctx.
func Emit(ctx context.Context, e Event) {
	slog.Default().InfoContext(ctx, e.Name(),
		append([]any{"event", e.Name(), "payload", e}, middleware.LogAttrs(ctx)...)...)
}

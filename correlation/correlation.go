// Package correlation carries a correlation ID through a context so that
// HTTP handlers, backend calls and published messages can be tied together
// in the logs.
package correlation

import (
	"context"

	"github.com/lithammer/shortuuid/v3"
)

type ctxKey struct{}

const HeaderKey = "Correlation-ID"

func ContextWithID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, correlationID)
}

// IDFromContext returns the correlation ID stored in ctx, or a freshly
// generated one (prefixed "gen_") when none is present.
func IDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "gen_" + shortuuid.New()
	}
	return id
}

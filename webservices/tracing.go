package webservices

import (
	"context"

	tracing "github.com/jamesrr39/go-tracing"
)

// startSpan starts a span if the request is being traced. The returned func ends it.
func startSpan(ctx context.Context, name string) func() {
	if ctx.Value(tracing.TracerCtxKey) == nil || ctx.Value(tracing.TraceCtxKey) == nil {
		return func() {}
	}

	span := tracing.StartSpan(ctx, name)
	return func() {
		span.End(ctx)
	}
}

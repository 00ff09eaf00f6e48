package opid

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// New attaches a freshly generated operation ID to ctx.
func New(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, contextKey{}, id), id
}

// Value returns the operation ID stored in ctx.
func Value(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

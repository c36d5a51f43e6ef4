package httpx

import (
	"context"

	"github.com/aussiebroadwan/taskboard/pkg/jwtx"
)

type ctxKey string

const ctxKeyCaller ctxKey = "caller"

// Caller is the authenticated identity attached by AuthnMiddleware.
type Caller struct {
	UserID   int64
	Username string
}

// ContextWithCaller stores c on ctx.
func ContextWithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, c)
}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKeyCaller).(Caller)
	return c, ok && c.UserID > 0
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	return ContextWithCaller(ctx, Caller{UserID: c.UserID, Username: c.Username})
}

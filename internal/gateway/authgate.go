package gateway

import (
	"context"
	"strings"
)

type authCtxKey int

const (
	bearerCtxKey authCtxKey = iota
	scopeCtxKey
)

// WithAuth stores the caller's bearer token and granted scope set (as
// returned by the introspect call) on ctx for tool handlers to read.
func WithAuth(ctx context.Context, bearerToken, scope string) context.Context {
	ctx = context.WithValue(ctx, bearerCtxKey, bearerToken)
	return context.WithValue(ctx, scopeCtxKey, scope)
}

// BearerFromContext returns the bearer token attached by the auth gate,
// or "" for a public-handshake request that carried none.
func BearerFromContext(ctx context.Context) string {
	v, _ := ctx.Value(bearerCtxKey).(string)
	return v
}

// scopeSet returns the caller's granted scopes as a set, space-split.
func scopeSet(ctx context.Context) map[string]bool {
	raw, _ := ctx.Value(scopeCtxKey).(string)
	set := make(map[string]bool)
	for _, s := range strings.Fields(raw) {
		set[s] = true
	}
	return set
}

// scopeAllows reports whether the caller's granted scope set contains
// required.
func scopeAllows(ctx context.Context, required string) bool {
	return scopeSet(ctx)[required]
}

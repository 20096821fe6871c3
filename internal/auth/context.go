package auth

import (
	"context"

	"staffhub/internal/model"
)

type contextKey struct{}

// WithUser attaches the resolved user to the request context.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFrom returns the resolved user for the request, or nil if the request
// carried no valid token.
func UserFrom(ctx context.Context) *model.User {
	u, _ := ctx.Value(contextKey{}).(*model.User)
	return u
}

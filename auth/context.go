// Package auth, as part of the authentication module.
// This file, `context.go`, deals with the per-request identity produced by the
// auth filter. The context is a standard way in Go to carry request-scoped
// values across API boundaries; here it only carries the value from the
// middleware to the handler, which then passes it on as an explicit argument.
package auth

import (
	"context"
)

// `contextKey` is a custom type for context keys. Using a custom type prevents collisions
// with context keys defined in other packages. It's a common Go idiom.
type contextKey string

const (
	// `userContextKey` is the specific key used to store the UserContext in the context.
	userContextKey contextKey = "auth_user"
)

// UserContext is the identity of an authenticated caller.
// It lives for exactly one request and is never persisted.
type UserContext struct {
	UserID int64
	// TokenID is the `jti` of the credential, empty for tokens minted without one.
	TokenID string
}

// NewContextWithUser returns a child of ctx carrying user.
func NewContextWithUser(ctx context.Context, user UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the UserContext stored by the auth middleware.
// The second return value (`bool`) indicates if a user was found.
func UserFromContext(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(UserContext)
	return user, ok
}

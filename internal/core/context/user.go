// Package context carries request-scoped values: the bearer token's caller and trace identifiers.
package context

import (
	"context"
	"slices"
)

// UserContext is the caller as described by the bearer token.
// Accounts live in the external identity provider; nothing here is looked up.
type UserContext struct {
	UserID      string
	Email       string
	Roles       []string
	Permissions []string
	IsAdmin     bool
}

type userContextKey struct{}

// WithUser attaches u to ctx.
func WithUser(ctx context.Context, u *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// GetUser returns the caller carried by ctx, or nil for anonymous requests.
func GetUser(ctx context.Context) *UserContext {
	u, _ := ctx.Value(userContextKey{}).(*UserContext)
	return u
}

// GetUserID returns the caller's ID, or "" for anonymous requests.
// Devices record it as created_by/updated_by.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// HasPermission reports whether the caller holds permission. Admins hold all of them.
func (u *UserContext) HasPermission(permission string) bool {
	return u.IsAdmin || slices.Contains(u.Permissions, permission)
}

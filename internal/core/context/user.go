// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"nordlager/internal/core/entity"
)

// UserContext contains the acting user's identity as established upstream.
// Authentication itself happens outside this system; callers arrive already
// authorized and the ledger only denormalizes who acted into history rows.
type UserContext struct {
	UserID     int64
	CustomerID int64
	UserName   string
	UserRole   string
	Platform   entity.Platform
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or zero.
func GetUserID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return 0
}

// GetCustomerID returns customer ID from context or zero.
func GetCustomerID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.CustomerID
	}
	return 0
}

// GetPlatform returns the request origin platform, defaulting to ext.
func GetPlatform(ctx context.Context) entity.Platform {
	if u := GetUser(ctx); u != nil && u.Platform.Valid() {
		return u.Platform
	}
	return entity.PlatformExt
}

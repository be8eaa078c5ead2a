package utils

import (
	"context"
)

type contextKey string

const ContextAuthUserKey contextKey = "authUser"

// AuthUser is the identity asserted by a verified bearer token.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func WithAuthUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, ContextAuthUserKey, user)
}

func GetAuthUserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(ContextAuthUserKey).(AuthUser)
	return user, ok
}

package state

import (
	"context"
)

const (
	CurrentUserId = "CurrentUserId"
	CurrentUserIP = "CurrentIP"
	RequestID     = "RequestID"
)

// Identity is the caller resolved by the auth gateway for a single request.
type Identity struct {
	ID    uint
	Email string
}

// CurrentUser returns the identity attached to ctx, or the zero Identity when none is attached.
// Works with both a *gin.Context and a plain request context.
func CurrentUser(ctx context.Context) Identity {
	value := ctx.Value(CurrentUserId)
	if value == nil {
		return Identity{}
	}

	identity, ok := value.(Identity)
	if !ok {
		return Identity{}
	}

	return identity
}

func SetCurrentUser(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, CurrentUserId, identity) //nolint:staticcheck // key shared with gin.Context.Keys
}

package authz

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type AuthUser struct {
	ID    int64
	Email string
	Role  string
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value
// has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// IsAdmin reports whether the given AuthUser represents an admin.
func IsAdmin(user *AuthUser) bool {
	return user != nil && strings.EqualFold(user.Role, "admin")
}

// RequireRole returns ErrUnauthenticated when no user is on the context and
// ErrForbidden when the user's role does not match.
func RequireRole(ctx context.Context, role string) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if !strings.EqualFold(user.Role, role) {
		return ErrForbidden
	}
	return nil
}

// CanManageReservation reports whether user may cancel or inspect a
// reservation owned by ownerID. Owners and admins qualify.
func CanManageReservation(user *AuthUser, ownerID int64) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID || IsAdmin(user)
}

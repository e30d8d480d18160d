package auth

import (
	"github.com/spec-kit/weight-tracker/internal/domain"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// Client-facing auth messages. The credential message is deliberately
// identical for unknown email and wrong password.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgNotAuthenticated   = "Not authenticated"
	MsgCouldNotValidate   = "Could not validate credentials"
	MsgForbidden          = "Forbidden, you lack privileges for this action"
)

// IsAdmin reports whether the user's current role is admin. The role
// is always the freshly loaded relationship, never a token claim.
func IsAdmin(user *domain.User) bool {
	return user != nil && user.Role != nil && user.Role.RoleType == domain.RoleAdmin
}

// AuthorizeSelfOrAdmin allows the action when the user owns the
// resource or is an admin. ownerID must come from the request path,
// not the body.
func AuthorizeSelfOrAdmin(user *domain.User, ownerID int64) error {
	if user != nil && (user.ID == ownerID || IsAdmin(user)) {
		return nil
	}
	return apperrors.NewForbidden(MsgForbidden)
}

// RequireAdmin allows the action only for admins, with no
// self-ownership exception.
func RequireAdmin(user *domain.User) error {
	if IsAdmin(user) {
		return nil
	}
	return apperrors.NewForbidden(MsgForbidden)
}

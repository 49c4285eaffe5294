package auth

import (
	"github.com/google/uuid"

	apperrors "timekeep/pkg/errors"
)

// Authorization policy for user-record mutation and entry scoping, kept as
// explicit functions so the invariants stay visible and testable instead of
// being scattered through handlers.

const (
	msgCannotDemoteSelf      = "you cannot remove your own admin status"
	msgCannotDeactivateSelf  = "you cannot deactivate your own account"
	msgPasswordChangeDenied  = "forbidden"
	msgActOnBehalfDenied     = "only admins can act on behalf of another user"
	msgEntryAccessDenied     = "forbidden"
)

// ResolveTargetUser decides which user an operation applies to. Non-admins
// are always scoped to themselves; admins may override with any user id.
func ResolveTargetUser(caller Identity, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == uuid.Nil || *requested == caller.UserID {
		return caller.UserID, nil
	}

	if !caller.IsAdmin {
		return uuid.Nil, apperrors.Forbidden(msgActOnBehalfDenied)
	}

	return *requested, nil
}

// CanTouchEntry reports whether the caller may edit or delete an entry
// owned by ownerID.
func CanTouchEntry(caller Identity, ownerID uuid.UUID) error {
	if caller.IsAdmin || caller.UserID == ownerID {
		return nil
	}
	return apperrors.Forbidden(msgEntryAccessDenied)
}

// CheckUserUpdate enforces the self-demotion and self-deactivation guards.
// This attempts to keep at least one active admin around; it cannot see
// database-level manipulation, only API traffic.
func CheckUserUpdate(caller Identity, targetID uuid.UUID, isAdmin, active *bool) error {
	if caller.UserID != targetID {
		return nil
	}

	if isAdmin != nil && !*isAdmin {
		return apperrors.Validation(msgCannotDemoteSelf)
	}

	if active != nil && !*active {
		return apperrors.Validation(msgCannotDeactivateSelf)
	}

	return nil
}

// CheckPasswordChange reports whether the caller may change targetID's
// password, and whether the current password must be verified first.
func CheckPasswordChange(caller Identity, targetID uuid.UUID) (requireCurrent bool, err error) {
	isSelf := caller.UserID == targetID

	if !isSelf && !caller.IsAdmin {
		return false, apperrors.Forbidden(msgPasswordChangeDenied)
	}

	// Admins skip current-password verification, even for their own account.
	return isSelf && !caller.IsAdmin, nil
}

// Package access holds the role predicates that gate API actions.
// Every check is a pure function of the caller; nothing is cached between requests.
package access

import (
	"errors"

	"github.com/examdesk/examdesk-backend/internal/model"
)

var (
	// ErrAuthenticationRequired is returned when there is no authenticated caller.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrAccessDenied is returned when the caller is authenticated but lacks the role.
	ErrAccessDenied = errors.New("access denied")
)

// Check decides whether a caller may perform an action.
type Check func(caller *model.User) error

// IsAuthenticated allows any active caller.
func IsAuthenticated(caller *model.User) error {
	if caller == nil || !caller.IsActive {
		return ErrAuthenticationRequired
	}
	return nil
}

// IsAdminUser allows callers whose role is exactly admin.
func IsAdminUser(caller *model.User) error {
	return hasRole(caller, model.RoleAdmin)
}

// IsSuperAdminUser allows callers whose role is exactly super_admin.
func IsSuperAdminUser(caller *model.User) error {
	return hasRole(caller, model.RoleSuperAdmin)
}

func hasRole(caller *model.User, role model.Role) error {
	if err := IsAuthenticated(caller); err != nil {
		return err
	}
	if caller.Role != role {
		return ErrAccessDenied
	}
	return nil
}

package access

import (
	"testing"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func user(role model.Role) *model.User {
	return &model.User{ID: 1, Email: "u@example.com", Role: role, IsActive: true}
}

func TestIsAdminUser(t *testing.T) {
	assert.NoError(t, IsAdminUser(user(model.RoleAdmin)))
	assert.ErrorIs(t, IsAdminUser(user(model.RoleExaminee)), ErrAccessDenied)
	assert.ErrorIs(t, IsAdminUser(user(model.RoleSuperAdmin)), ErrAccessDenied)
	assert.ErrorIs(t, IsAdminUser(nil), ErrAuthenticationRequired)
}

func TestIsSuperAdminUser(t *testing.T) {
	assert.NoError(t, IsSuperAdminUser(user(model.RoleSuperAdmin)))
	assert.ErrorIs(t, IsSuperAdminUser(user(model.RoleAdmin)), ErrAccessDenied)
	assert.ErrorIs(t, IsSuperAdminUser(user(model.RoleExaminee)), ErrAccessDenied)
	assert.ErrorIs(t, IsSuperAdminUser(nil), ErrAuthenticationRequired)
}

func TestIsAuthenticated_InactiveUser(t *testing.T) {
	u := user(model.RoleAdmin)
	u.IsActive = false

	assert.ErrorIs(t, IsAuthenticated(u), ErrAuthenticationRequired)
	assert.ErrorIs(t, IsAdminUser(u), ErrAuthenticationRequired)
}

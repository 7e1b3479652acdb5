package lockout_test

import (
	"testing"

	"github.com/goliatone/go-lockout"
	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, lockout.RoleEmployee.IsValid())
	assert.True(t, lockout.RoleHR.IsValid())
	assert.True(t, lockout.RoleAdmin.IsValid())
	assert.False(t, lockout.Role("manager").IsValid())
	assert.False(t, lockout.Role("").IsValid())
}

func TestRoleIsAtLeast(t *testing.T) {
	assert.True(t, lockout.RoleAdmin.IsAtLeast(lockout.RoleEmployee))
	assert.True(t, lockout.RoleHR.IsAtLeast(lockout.RoleHR))
	assert.False(t, lockout.RoleEmployee.IsAtLeast(lockout.RoleHR))
	assert.False(t, lockout.Role("manager").IsAtLeast(lockout.RoleEmployee))
	assert.False(t, lockout.RoleAdmin.IsAtLeast(lockout.Role("manager")))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		role    lockout.Role
		isValid bool
	}{
		{"employee", lockout.RoleEmployee, true},
		{"hr", lockout.RoleHR, true},
		{"admin", lockout.RoleAdmin, true},
		{"Admin", lockout.Role("Admin"), false},
		{"superuser", lockout.Role("superuser"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, ok := lockout.ParseRole(tt.input)
			assert.Equal(t, tt.role, role)
			assert.Equal(t, tt.isValid, ok)
		})
	}
}

func TestGetAllRoles(t *testing.T) {
	roles := lockout.GetAllRoles()
	assert.Len(t, roles, 3)
	for _, role := range roles {
		assert.True(t, role.IsValid())
	}
}

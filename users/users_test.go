package users_test

import (
	"testing"

	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, in := range []string{"manager", "MANAGER", "ROLE_MANAGER", " role_manager "} {
		r, err := users.ParseRole(in)
		require.NoError(t, err, in)
		require.Equal(t, users.RoleManager, r)
	}

	r, err := users.ParseRole("employee")
	require.NoError(t, err)
	require.Equal(t, users.RoleEmployee, r)

	_, err = users.ParseRole("admin")
	require.ErrorIs(t, err, hrmserrors.ErrInvalidRole)
}

func TestRoleType_DashboardPath(t *testing.T) {
	require.Equal(t, "/manager", users.RoleManager.DashboardPath())
	require.Equal(t, "/employee", users.RoleEmployee.DashboardPath())
	require.Empty(t, users.RoleType("").DashboardPath())
	require.True(t, users.RoleManager.IsManager())
	require.False(t, users.RoleEmployee.IsManager())
}

func TestValidatePasswordStrength(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, users.ValidatePasswordStrength("Passw0rdX"))
	})

	t.Run("too short", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Pa1")
		require.ErrorIs(t, err, hrmserrors.ErrWeakPassword)
		require.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("no upper", func(t *testing.T) {
		err := users.ValidatePasswordStrength("password1")
		require.Contains(t, err.Error(), "uppercase")
	})

	t.Run("no lower", func(t *testing.T) {
		err := users.ValidatePasswordStrength("PASSWORD1")
		require.Contains(t, err.Error(), "lowercase")
	})

	t.Run("no number", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Passwordx")
		require.Contains(t, err.Error(), "number")
	})
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, users.ValidateEmail("jane.doe@example.com"))

	for _, bad := range []string{"", "jane", "jane@", "Jane <jane@example.com>", "jane@localhost"} {
		require.ErrorIs(t, users.ValidateEmail(bad), hrmserrors.ErrInvalidEmail, bad)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := users.Registration{Username: "jane", Email: "jane@example.com", Password: "Secret123", Role: users.RoleEmployee}
	require.NoError(t, users.ValidateRegistration(valid))

	missingName := valid
	missingName.Username = " "
	require.ErrorIs(t, users.ValidateRegistration(missingName), hrmserrors.ErrMissingField)

	badRole := valid
	badRole.Role = "ROLE_ROOT"
	require.ErrorIs(t, users.ValidateRegistration(badRole), hrmserrors.ErrInvalidRole)

	weak := valid
	weak.Password = "short"
	require.ErrorIs(t, users.ValidateRegistration(weak), hrmserrors.ErrWeakPassword)
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("Secret123")
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("Secret123", hash))
	require.False(t, users.CheckPasswordHash("secret123", hash))
}

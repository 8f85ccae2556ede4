package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-hrms-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestToStringSlice(t *testing.T) {
	got := utils.ToStringSlice([]any{"ROLE_MANAGER", 7, " ", " ROLE_EMPLOYEE ", nil})
	require.Equal(t, []string{"ROLE_MANAGER", "ROLE_EMPLOYEE"}, got)
	require.Empty(t, utils.ToStringSlice(nil))
}

func TestPointers(t *testing.T) {
	var missing *int64
	require.Equal(t, int64(0), utils.Value(missing))
	require.Equal(t, int64(9), utils.ValueOr(missing, 9))
	require.Equal(t, int64(3), utils.Value(utils.Ptr(int64(3))))
}

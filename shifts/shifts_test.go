package shifts_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-hrms-client/auth"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/internal/fakebackend"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*fakebackend.Backend, *fakebackend.Client, int64) {
	t.Helper()
	backend := fakebackend.New()
	t.Cleanup(backend.Close)

	jane, err := backend.AddUser("jane", "Sunshine42", "jane@example.com", users.RoleEmployee)
	require.NoError(t, err)
	_, err = backend.AddUser("bob", "Sunshine43", "bob@example.com", users.RoleEmployee)
	require.NoError(t, err)

	client, err := backend.NewClient()
	require.NoError(t, err)
	require.NoError(t, backend.LoginAs(client, "jane"))
	return backend, client, jane.EmployeeID
}

func TestRequestSwap(t *testing.T) {
	backend, c, id := newFixture(t)

	require.NoError(t, c.Shifts.RequestSwap(context.Background(), id, 7))
	require.Equal(t, []fakebackend.SwapRequest{{EmployeeID: id, ShiftID: 7}}, backend.Swaps())
}

func TestRequestSwap_RequiresBothIDs(t *testing.T) {
	backend, c, id := newFixture(t)

	require.ErrorIs(t, c.Shifts.RequestSwap(context.Background(), 0, 7), hrmserrors.ErrMissingField)
	require.ErrorIs(t, c.Shifts.RequestSwap(context.Background(), id, 0), hrmserrors.ErrMissingField)
	require.Zero(t, backend.Hits(fakebackend.RouteShiftSwap))
}

func TestRequestSwap_ForOtherEmployeeIsForbidden(t *testing.T) {
	backend, c, id := newFixture(t)

	err := c.Shifts.RequestSwap(context.Background(), id+1, 7)
	require.ErrorIs(t, err, hrmserrors.ErrUnauthorized)
	require.Equal(t, []string{auth.MessageForbidden}, c.Notifier.All())
	require.Empty(t, backend.Swaps())
}

func TestRequestSwap_ServerErrorIsReturned(t *testing.T) {
	backend, c, id := newFixture(t)
	backend.FailNext(fakebackend.RouteShiftSwap, http.StatusInternalServerError)

	err := c.Shifts.RequestSwap(context.Background(), id, 7)
	require.ErrorIs(t, err, hrmserrors.ErrUnexpectedStatus)
	require.Empty(t, c.Notifier.All())
	require.True(t, c.Store.IsAuthenticated())
}

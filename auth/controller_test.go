package auth_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jrsteele09/go-hrms-client/auth"
	"github.com/jrsteele09/go-hrms-client/gateway"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/internal/fakebackend"
	"github.com/jrsteele09/go-hrms-client/session"
	fakesessionrepo "github.com/jrsteele09/go-hrms-client/session/repofakes"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/stretchr/testify/require"
)

type controllerFixture struct {
	store    *session.Store
	nav      *fakebackend.Navigations
	notices  *fakebackend.Notices
	ctrl     *auth.Controller
	original session.Credential
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	original := session.Credential{Token: "tok", Username: "jane", Role: users.RoleEmployee}
	store, err := session.New(fakesessionrepo.NewFakeSessionRepoWith(original))
	require.NoError(t, err)

	f := &controllerFixture{
		store:    store,
		nav:      &fakebackend.Navigations{},
		notices:  &fakebackend.Notices{},
		original: original,
	}
	f.ctrl = auth.NewController(store, f.nav, f.notices, "/login")
	return f
}

// client returns a gateway client whose server always answers status.
func (f *controllerFixture) client(t *testing.T, status int) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	c, err := gateway.NewClient(gateway.APIClientName, srv.URL+"/api", f.store,
		gateway.WithResponseSteps(f.ctrl.Step()))
	require.NoError(t, err)
	return c
}

func TestController_UnauthenticatedClearsSessionAndNavigates(t *testing.T) {
	f := newControllerFixture(t)
	c := f.client(t, http.StatusUnauthorized)

	_, err := c.Get(context.Background(), "employee/employee-username/jane", nil)
	require.ErrorIs(t, err, hrmserrors.ErrUnauthenticated)

	// Side effects are complete by the time the caller sees the error.
	require.False(t, f.store.IsAuthenticated())
	require.True(t, f.store.Credential().IsZero())
	require.Equal(t, []string{"/login"}, f.nav.All())
	require.Empty(t, f.notices.All())
}

func TestController_ForbiddenNotifiesAndKeepsSession(t *testing.T) {
	f := newControllerFixture(t)
	c := f.client(t, http.StatusForbidden)

	_, err := c.Get(context.Background(), "employee/all", nil)
	require.ErrorIs(t, err, hrmserrors.ErrUnauthorized)

	require.Equal(t, f.original, f.store.Credential())
	require.Equal(t, []string{auth.MessageForbidden}, f.notices.All())
	require.Empty(t, f.nav.All())
}

func TestController_UnreachableNotifiesAndKeepsSession(t *testing.T) {
	f := newControllerFixture(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := gateway.NewClient(gateway.APIClientName, base, f.store, gateway.WithResponseSteps(f.ctrl.Step()))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "ping", nil)
	require.ErrorIs(t, err, hrmserrors.ErrUnreachable)

	require.Equal(t, f.original, f.store.Credential())
	require.Equal(t, []string{auth.MessageUnreachable}, f.notices.All())
	require.Empty(t, f.nav.All())
}

func TestController_OtherKindsHaveNoSideEffects(t *testing.T) {
	f := newControllerFixture(t)

	for _, kind := range []gateway.Kind{gateway.KindNone, gateway.KindMalformed, gateway.KindStatus, gateway.KindCanceled} {
		f.ctrl.Handle(kind)
	}

	require.Equal(t, f.original, f.store.Credential())
	require.Empty(t, f.notices.All())
	require.Empty(t, f.nav.All())
}

func TestController_StatusErrorPassesThrough(t *testing.T) {
	f := newControllerFixture(t)
	c := f.client(t, http.StatusConflict)

	_, err := c.Post(context.Background(), "shift/request-swap", nil, nil)
	require.ErrorIs(t, err, hrmserrors.ErrUnexpectedStatus)
	require.Equal(t, gateway.KindStatus, gateway.KindOf(err))
	require.True(t, f.store.IsAuthenticated())
}

func TestController_LogoutIsRepeatable(t *testing.T) {
	f := newControllerFixture(t)

	f.ctrl.Logout()
	f.ctrl.Logout()

	require.False(t, f.store.IsAuthenticated())
	require.Equal(t, []string{"/login", "/login"}, f.nav.All())
}

func TestController_NilCollaborators(t *testing.T) {
	ctrl := auth.NewController(nil, nil, nil, "")
	require.Equal(t, "/", ctrl.LoginPath())

	require.NotPanics(t, func() {
		ctrl.Handle(gateway.KindUnauthenticated)
		ctrl.Handle(gateway.KindUnauthorized)
		ctrl.Handle(gateway.KindUnreachable)
	})
}

func TestConsoleNotifierAndNavigator(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	auth.NewConsoleNotifier(&out).Notify(auth.MessageForbidden)
	require.Equal(t, "! "+auth.MessageForbidden+"\n", out.String())

	out.Reset()
	nav := auth.NewConsoleNavigator(&out, map[string]string{"/": "hrms login"})
	nav.Navigate("/")
	nav.Navigate("/employee")

	require.Equal(t, "/employee", nav.Current())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{"-> / (run `hrms login`)", "-> /employee"}, lines)
}

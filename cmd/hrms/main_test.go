package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jrsteele09/go-hrms-client/auth"
	"github.com/jrsteele09/go-hrms-client/employees"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/internal/fakebackend"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type cli struct {
	t       *testing.T
	backend *fakebackend.Backend
	jane    *employees.Employee
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	color.NoColor = true
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	backend := fakebackend.New()
	t.Cleanup(backend.Close)
	jane, err := backend.AddUser("jane", "Sunshine42", "jane@example.com", users.RoleEmployee)
	require.NoError(t, err)
	_, err = backend.AddUser("boss", "Corner0ffice", "boss@example.com", users.RoleManager)
	require.NoError(t, err)

	t.Setenv("ENV", "PROD")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")
	t.Setenv("AUTH_BASE_URL", backend.AuthBaseURL())
	t.Setenv("API_BASE_URL", backend.APIBaseURL())
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("LOGIN_PATH", "/")

	return &cli{t: t, backend: backend, jane: jane}
}

func (c *cli) run(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	err := execute(strings.NewReader(stdin), &out, &errOut, append([]string{"--quiet"}, args...))
	return out.String(), errOut.String(), err
}

func (c *cli) mustRun(args ...string) (string, string) {
	c.t.Helper()
	out, errOut, err := c.run("", args...)
	require.NoError(c.t, err, errOut)
	return out, errOut
}

func TestCLI_SessionLifecycle(t *testing.T) {
	c := newCLI(t)

	out, _ := c.mustRun("whoami")
	require.Equal(t, "Not logged in\n", out)

	out, errOut := c.mustRun("login", "-u", "jane", "-p", "Sunshine42")
	require.Equal(t, "Logged in as jane (EMPLOYEE)\n", out)
	require.Contains(t, errOut, "-> /employee (run `hrms dashboard`)")

	out, _ = c.mustRun("whoami", "-o", "json")
	var who whoamiView
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	require.True(t, who.Authenticated)
	require.Equal(t, "jane", who.Username)
	require.Equal(t, string(users.RoleEmployee), who.Role)
	require.Equal(t, "/employee", who.Home)
	require.NotNil(t, who.ExpiresAt)
	require.False(t, who.Expired)

	out, _ = c.mustRun("profile", "-o", "yaml")
	var profile auth.Profile
	require.NoError(t, yaml.Unmarshal([]byte(out), &profile))
	require.Equal(t, "jane", profile.Username)
	require.Equal(t, "jane@example.com", profile.Email)

	c.mustRun("employee", "update", "--set", "firstName=Jane", "--set", "lastName=Doe")
	stored, _ := c.backend.Employee(c.jane.EmployeeID)
	require.Equal(t, "Jane Doe", stored.FullName())

	out, _ = c.mustRun("employee", "show", "-o", "json")
	var emp employees.Employee
	require.NoError(t, json.Unmarshal([]byte(out), &emp))
	require.Equal(t, "Jane", emp.FirstName)

	_, errOut = c.mustRun("shift", "swap", "--shift-id", "3")
	require.Contains(t, errOut, "Shift swap request submitted successfully!")
	require.Equal(t, []fakebackend.SwapRequest{{EmployeeID: c.jane.EmployeeID, ShiftID: 3}}, c.backend.Swaps())

	out, _ = c.mustRun("dashboard")
	require.Contains(t, out, "Welcome, Jane Doe (/employee)")
	require.Contains(t, out, "jane@example.com")

	_, errOut = c.mustRun("logout")
	require.Contains(t, errOut, "-> / (run `hrms login`)")
	out, _ = c.mustRun("whoami")
	require.Equal(t, "Not logged in\n", out)
}

func TestCLI_LoginReadsPasswordFromStdin(t *testing.T) {
	c := newCLI(t)

	out, errOut, err := c.run("Corner0ffice\n", "login", "-u", "boss")
	require.NoError(t, err, errOut)
	require.Contains(t, errOut, "Password: ")
	require.Equal(t, "Logged in as boss (MANAGER)\n", out)
	require.Contains(t, errOut, "-> /manager")
}

func TestCLI_RejectedTokenLogsOut(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "-u", "jane", "-p", "Sunshine42")
	c.backend.FailNext(fakebackend.RouteProfile, 401)

	_, errOut, err := c.run("", "profile")
	require.ErrorIs(t, err, hrmserrors.ErrUnauthenticated)
	require.Contains(t, errOut, "-> / (run `hrms login`)")

	out, _ := c.mustRun("whoami")
	require.Equal(t, "Not logged in\n", out)
}

func TestCLI_ForbiddenShowsNotice(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "-u", "jane", "-p", "Sunshine42")

	_, errOut, err := c.run("", "employee", "show", "boss")
	require.ErrorIs(t, err, hrmserrors.ErrUnauthorized)
	require.Contains(t, errOut, "! "+auth.MessageForbidden)

	out, _ := c.mustRun("whoami")
	require.Contains(t, out, "jane")
}

func TestCLI_UnreachableShowsNotice(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "-u", "jane", "-p", "Sunshine42")
	c.backend.Close()

	_, errOut, err := c.run("", "dashboard")
	require.ErrorIs(t, err, hrmserrors.ErrUnreachable)
	require.Contains(t, errOut, "! "+auth.MessageUnreachable)
}

func TestCLI_VerboseReportsMetricsWhenCommandFails(t *testing.T) {
	c := newCLI(t)
	logFile := filepath.Join(t.TempDir(), "hrms.log")
	t.Setenv("LOG_FILE", logFile)
	c.mustRun("login", "-u", "jane", "-p", "Sunshine42")
	c.backend.FailNext(fakebackend.RouteProfile, http.StatusInternalServerError)

	_, errOut, err := c.run("", "--verbose", "profile")
	require.ErrorIs(t, err, hrmserrors.ErrUnexpectedStatus)
	require.Contains(t, errOut, "gateway metrics")

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(logged), "gateway metrics")
}

func TestCLI_ValidationFailsBeforeDispatch(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("", "register", "-u", "sam", "-e", "sam@example", "-p", "Passw0rdX")
	require.ErrorIs(t, err, hrmserrors.ErrInvalidEmail)

	_, _, err = c.run("", "register", "-u", "sam", "-e", "sam@example.com", "-p", "Passw0rdX", "--role", "ceo")
	require.ErrorIs(t, err, hrmserrors.ErrInvalidRole)
	require.Zero(t, c.backend.Hits(fakebackend.RouteRegister))

	out, _ := c.mustRun("register", "-u", "sam", "-e", "sam@example.com", "-p", "Passw0rdX", "--role", "manager")
	require.Equal(t, "User registered successfully\n", out)
}

func TestCLI_RejectsUnknownOutput(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("", "whoami", "-o", "xml")
	require.ErrorContains(t, err, "unknown output format")
}

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments([]string{"firstName=Jane", "email=a=b@example.com"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"firstName": "Jane", "email": "a=b@example.com"}, fields)

	_, err = parseAssignments([]string{"firstName"})
	require.Error(t, err)
	_, err = parseAssignments([]string{"=x"})
	require.Error(t, err)
}

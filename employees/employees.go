package employees

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-hrms-client/gateway"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/rs/zerolog/log"
)

const (
	routeByUsername = "employee/employee-username/"
	routeUpdateByID = "employee/update/employee-record/"
	MaxUpdateFields = 5
)

// Employee is the employee record served by the business API.
type Employee struct {
	EmployeeID  int64          `json:"employeeId" yaml:"employeeId"`
	ManagerID   *int64         `json:"managerId,omitempty" yaml:"managerId,omitempty"`
	Username    string         `json:"username" yaml:"username"`
	FirstName   string         `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName    string         `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Role        users.RoleType `json:"role,omitempty" yaml:"role,omitempty"`
	Email       string         `json:"email,omitempty" yaml:"email,omitempty"`
	PhoneNumber string         `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
	Department  string         `json:"department,omitempty" yaml:"department,omitempty"`
	ShiftID     *int64         `json:"shiftId,omitempty" yaml:"shiftId,omitempty"`
	JoinedDate  string         `json:"joinedDate,omitempty" yaml:"joinedDate,omitempty"`
}

// FullName joins first and last name, falling back to the username.
func (e *Employee) FullName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		return e.Username
	}
	return name
}

// UsernameSource supplies the logged-in username (satisfied by *session.Store).
type UsernameSource interface {
	Username() string
}

// Service wraps the employee endpoints of the business API.
type Service struct {
	client  *gateway.Client
	session UsernameSource
}

// NewService creates a Service. client must be the gateway's api client.
func NewService(client *gateway.Client, session UsernameSource) *Service {
	return &Service{client: client, session: session}
}

// GetByUsername fetches the employee record for username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*Employee, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("[employees GetByUsername] %w: username", hrmserrors.ErrMissingField)
	}
	if username == "." || username == ".." {
		return nil, fmt.Errorf("[employees GetByUsername] %w: %q", hrmserrors.ErrInvalidUsername, username)
	}

	resp, err := s.client.Get(ctx, routeByUsername+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}

	var e Employee
	if err := resp.Decode(&e); err != nil {
		return nil, hrmserrors.Wrapf(err, "[employees GetByUsername] decode employee %q", username)
	}
	return &e, nil
}

// Current fetches the record of the logged-in user.
func (s *Service) Current(ctx context.Context) (*Employee, error) {
	username := ""
	if s.session != nil {
		username = s.session.Username()
	}
	if username == "" {
		return nil, hrmserrors.ErrNoSession
	}
	return s.GetByUsername(ctx, username)
}

// UpdateRecord sends a partial update for employee id. fields maps field
// names (firstName, lastName, username, password, phoneNumber, email) to new
// values; every field is validated before anything is sent.
func (s *Service) UpdateRecord(ctx context.Context, id int64, fields map[string]string) error {
	if id <= 0 {
		return fmt.Errorf("[employees UpdateRecord] %w: employee id", hrmserrors.ErrMissingField)
	}
	if err := ValidateUpdate(fields); err != nil {
		return err
	}

	if _, err := s.client.Patch(ctx, routeUpdateByID+strconv.FormatInt(id, 10), fields); err != nil {
		return err
	}

	log.Info().Int64("employeeId", id).Int("fields", len(fields)).Msg("employee record updated")
	return nil
}

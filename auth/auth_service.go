package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-hrms-client/gateway"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/session"
	"github.com/jrsteele09/go-hrms-client/token"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/rs/zerolog/log"
)

const (
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteProfile  = "/profile"
)

// Service performs the authentication-service calls and keeps the session
// store in step with them.
type Service struct {
	client     *gateway.Client
	store      *session.Store
	controller *Controller
}

// NewService creates a Service. client must be the gateway's auth client.
func NewService(client *gateway.Client, store *session.Store, controller *Controller) *Service {
	return &Service{
		client:     client,
		store:      store,
		controller: controller,
	}
}

// Login exchanges credentials for a token and saves the resulting session.
// Empty credentials are rejected before any request is sent.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, hrmserrors.ErrMissingCredentials
	}

	resp, err := s.client.Post(ctx, RouteLogin, nil, creds)
	if err != nil {
		return nil, err
	}

	var lr LoginResponse
	if err := resp.Decode(&lr); err != nil {
		return nil, hrmserrors.Wrapf(err, "[auth Login] decode login response")
	}
	if lr.Token == "" {
		return nil, fmt.Errorf("[auth Login] %w: login response has no token", hrmserrors.ErrInvalidToken)
	}

	cred := session.Credential{Token: lr.Token, Username: lr.Username}
	role := lr.Role
	if role == "" || cred.Username == "" {
		// Fill gaps from the token itself; opaque tokens are fine.
		if claims, err := token.ParseClaims(lr.Token); err == nil {
			if role == "" {
				role = claims.Role()
			}
			if cred.Username == "" {
				cred.Username = claims.Username
			}
		}
	}
	if cred.Username == "" {
		cred.Username = creds.Username
	}
	if role != "" {
		parsed, err := users.ParseRole(role)
		if err != nil {
			log.Warn().Str("role", role).Msg("unrecognised role in login response")
			parsed = users.RoleType(role)
		}
		cred.Role = parsed
	}

	if err := s.store.SaveCredential(cred); err != nil {
		return nil, hrmserrors.Wrapf(err, "[auth Login] save session")
	}
	lr.Role = string(cred.Role)
	lr.Username = cred.Username

	log.Info().Str("username", cred.Username).Str("role", string(cred.Role)).Msg("logged in")
	return &lr, nil
}

// Register creates a new account. The payload is validated before dispatch.
func (s *Service) Register(ctx context.Context, reg users.Registration) (*RegisterResponse, error) {
	if err := users.ValidateRegistration(reg); err != nil {
		return nil, err
	}

	resp, err := s.client.Post(ctx, RouteRegister, nil, reg)
	if err != nil {
		return nil, err
	}

	var rr RegisterResponse
	if json.Valid(resp.Body) {
		if err := resp.Decode(&rr); err != nil {
			// A JSON string or array rather than an object
			rr.Message = strings.Trim(resp.String(), `"`)
		}
	} else {
		rr.Message = strings.TrimSpace(resp.String())
	}
	return &rr, nil
}

// Profile fetches the current user's profile. The request is sent even without
// a session; the server decides.
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	resp, err := s.client.Get(ctx, RouteProfile, nil)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := resp.Decode(&p); err != nil {
		return nil, hrmserrors.Wrapf(err, "[auth Profile] decode profile")
	}
	return &p, nil
}

// Logout clears the session and returns the user to the login entry point.
func (s *Service) Logout() {
	s.controller.Logout()
	log.Info().Msg("user logged out")
}

// HomePath is where the current user lands: the role dashboard when logged
// in, otherwise the login entry point.
func (s *Service) HomePath() string {
	if !s.store.IsAuthenticated() {
		return s.controller.LoginPath()
	}
	if p := s.store.Role().DashboardPath(); p != "" {
		return p
	}
	return s.controller.LoginPath()
}

package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	authBaseURLVar    = "AUTH_BASE_URL"
	apiBaseURLVar     = "API_BASE_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"
)

type Endpoints struct{}

var _ EndpointConfig = Endpoints{}

// GetAuthBaseURL returns the base address of the authentication service
// (login, register, profile).
func (Endpoints) GetAuthBaseURL() string {
	return strings.TrimRight(GetEnv(authBaseURLVar, "http://localhost:8081/api/auth"), "/")
}

// GetAPIBaseURL returns the base address of the employee/shift/leave service.
func (Endpoints) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:9090/api"), "/")
}

// GetRequestTimeout returns the per-request timeout. Zero leaves the
// transport default in place.
func (Endpoints) GetRequestTimeout() time.Duration {
	raw := GetEnv(requestTimeoutVar, "")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Warn().Str("value", raw).Msg("ignoring invalid " + requestTimeoutVar)
		return 0
	}
	return d
}

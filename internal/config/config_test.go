package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	for _, v := range []string{"ENV", "AUTH_BASE_URL", "API_BASE_URL", "REQUEST_TIMEOUT", "SESSION_BACKEND", "LOGIN_PATH"} {
		t.Setenv(v, "")
	}
	c := config.New()

	require.Equal(t, "DEV", c.GetEnv())
	require.True(t, c.IsDevelopment())
	require.Equal(t, "http://localhost:8081/api/auth", c.GetAuthBaseURL())
	require.Equal(t, "http://localhost:9090/api", c.GetAPIBaseURL())
	require.Zero(t, c.GetRequestTimeout())
	require.Equal(t, config.SessionBackendFile, c.GetSessionBackend())
	require.Equal(t, "/", c.GetLoginPath())
	require.NotEmpty(t, c.GetSessionFile())
}

func TestConfig_Overrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("AUTH_BASE_URL", "https://auth.example.com/api/auth/")
	t.Setenv("API_BASE_URL", "https://hr.example.com/api")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SESSION_FILE", "/tmp/hrms-session.json")
	c := config.New()

	require.Equal(t, "PROD", c.GetEnv())
	require.False(t, c.IsDevelopment())
	require.Equal(t, "https://auth.example.com/api/auth", c.GetAuthBaseURL())
	require.Equal(t, "https://hr.example.com/api", c.GetAPIBaseURL())
	require.Equal(t, 5*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.SessionBackendMemory, c.GetSessionBackend())
	require.Equal(t, "/tmp/hrms-session.json", c.GetSessionFile())
}

func TestConfig_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	require.Zero(t, config.New().GetRequestTimeout())
}

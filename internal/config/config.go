package config

import "time"

type Config interface {
	EnvConfig
	EndpointConfig
	SessionConfig
	LoggingConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	IsDevelopment() bool
}

// EndpointConfig holds the two fixed base addresses the gateway dispatches to.
// They are read once at start-up; clients are never re-pointed at runtime.
type EndpointConfig interface {
	GetAuthBaseURL() string
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type SessionConfig interface {
	GetSessionBackend() string
	GetSessionFile() string
	GetLoginPath() string
}

type LoggingConfig interface {
	GetLogLevel() string
	GetLogFile() string
}

type mainConfig struct {
	EnvVars
	Endpoints
	Session
	Logging
}

func New() Config {
	return mainConfig{}
}

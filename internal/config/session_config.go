package config

import (
	"os"
	"path/filepath"
)

const (
	sessionBackendVar = "SESSION_BACKEND"
	sessionFileVar    = "SESSION_FILE"
	loginPathVar      = "LOGIN_PATH"

	SessionBackendFile   = "file"
	SessionBackendMemory = "memory"
)

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionBackend() string {
	if GetEnv(sessionBackendVar, SessionBackendFile) == SessionBackendMemory {
		return SessionBackendMemory
	}
	return SessionBackendFile
}

// GetSessionFile returns where the credential is persisted between runs.
func (Session) GetSessionFile() string {
	if path := os.Getenv(sessionFileVar); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "./data"
	}
	return filepath.Join(dir, "hrms", "session.json")
}

// GetLoginPath is the login entry point the session controller navigates to.
func (Session) GetLoginPath() string {
	return GetEnv(loginPathVar, "/")
}

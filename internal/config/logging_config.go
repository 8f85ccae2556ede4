package config

type Logging struct{}

var _ LoggingConfig = Logging{}

func (Logging) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}

// GetLogFile returns an optional path for a rotating log file. Empty disables it.
func (Logging) GetLogFile() string {
	return GetEnv("LOG_FILE", "")
}

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for the optional log file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Config is what New needs from the application config.
type Config interface {
	config.EnvConfig
	config.LoggingConfig
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level. Unknown or empty values
// fall back to def.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return def
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return def
	}
	return lvl
}

// New builds the process logger and installs it as the global zerolog logger.
// Development gets a human readable console writer on out; other environments
// log JSON. A LOG_FILE adds a rotating JSON sink. The returned closer releases
// the file.
func New(cfg Config, out io.Writer) (zerolog.Logger, io.Closer) {
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer = out
	if cfg.IsDevelopment() {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}
	if path := cfg.GetLogFile(); path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, file)
		closer = file
	}

	level := ParseLevel(cfg.GetLogLevel(), zerolog.InfoLevel)
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.GetAppName()).
		Logger()

	log.Logger = logger
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

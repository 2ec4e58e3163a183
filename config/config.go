/*
The package config reads the settings of smsinject from the environment. Settings can also be put into
a .env file in the working directory.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// The environment variables
const (
	PortKey                = "SMSPDU_PORT"
	TimezoneKey            = "SMSPDU_TIMEZONE"
	InternationalPrefixKey = "SMSPDU_IDP"
	TraceKey               = "SMSPDU_TRACE"
	TimeoutKey             = "SMSPDU_TIMEOUT"
	LogLevelKey            = "SMSPDU_LOG_LEVEL"
)

// The defaults
const (
	DefaultInternationalPrefix = "011"
	DefaultTimeout             = 5 * time.Second
	DefaultLogLevel            = logrus.InfoLevel
)

// Config contains all settings.
type Config struct {
	// Port is the serial device of the modem. Empty means auto-detection.
	Port string
	// Location is used to encode the service centre timestamp.
	Location *time.Location
	// InternationalPrefix replaces the "+" of CDMA destinations outside of the NANP.
	InternationalPrefix string
	// TraceFile receives a trace of the AT communication. Empty means no tracing.
	TraceFile string
	// Timeout of a single AT command.
	Timeout  time.Duration
	LogLevel logrus.Level
}

// Load reads the given .env files, or the .env file in the working directory if none is given, and
// returns the configuration from the environment. A missing .env file is not an error. Variables
// that are already set in the environment take precedence over the .env files.
func Load(filenames ...string) (Config, error) {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("cannot read .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv returns the configuration from the given environment lookup.
func FromEnv(getenv func(string) string) (Config, error) {
	result := Config{
		Port:                strings.TrimSpace(getenv(PortKey)),
		Location:            time.Local,
		InternationalPrefix: DefaultInternationalPrefix,
		TraceFile:           strings.TrimSpace(getenv(TraceKey)),
		Timeout:             DefaultTimeout,
		LogLevel:            DefaultLogLevel,
	}

	if value := strings.TrimSpace(getenv(TimezoneKey)); value != "" {
		location, err := time.LoadLocation(value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", TimezoneKey, err)
		}
		result.Location = location
	}

	if value := strings.TrimSpace(getenv(InternationalPrefixKey)); value != "" {
		if !isDigits(value) {
			return Config{}, fmt.Errorf("invalid %s: %q is not numeric", InternationalPrefixKey, value)
		}
		result.InternationalPrefix = value
	}

	if value := strings.TrimSpace(getenv(TimeoutKey)); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", TimeoutKey, err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %s is not positive", TimeoutKey, value)
		}
		result.Timeout = timeout
	}

	if value := strings.TrimSpace(getenv(LogLevelKey)); value != "" {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
		}
		result.LogLevel = level
	}

	return result, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

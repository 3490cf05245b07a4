package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	appNameVar    = "APP_NAME"
	envVar        = "ENV"
	logLevelVar   = "LOG_LEVEL"
	apiURLVar     = "NUUR_API_URL"
	timeoutVar    = "HTTP_TIMEOUT"
	loginPathVar  = "LOGIN_PATH"
	folderEnvVar  = "FOLDER"
	passphraseVar = "SESSION_PASSPHRASE"

	DefaultAPIBaseURL = "http://localhost:8000/api/v1"
)

type EnvVars struct{}

var (
	_ EnvConfig     = EnvVars{}
	_ ClientConfig  = EnvVars{}
	_ SessionConfig = EnvVars{}
)

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "NuuR")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

// GetAPIBaseURL returns the backend base address without a trailing slash,
// e.g. "https://api.nuur.et/api/v1".
func (EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiURLVar, DefaultAPIBaseURL), "/")
}

// GetHTTPTimeout returns zero (transport default) unless HTTP_TIMEOUT holds a valid duration.
func (EnvVars) GetHTTPTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(timeoutVar, "0s"))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (EnvVars) GetLoginPath() string {
	return GetEnv(loginPathVar, "/login")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetSessionPassphrase() string {
	return os.Getenv(passphraseVar)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func formatPort(port string) string {
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

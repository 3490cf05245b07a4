package config

import "time"

type Config interface {
	EnvConfig
	ClientConfig
	SessionConfig
	BackendConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// ClientConfig configures the REST client.
type ClientConfig interface {
	GetAPIBaseURL() string
	GetHTTPTimeout() time.Duration
	GetLoginPath() string
}

// SessionConfig configures where and how the session record is persisted.
type SessionConfig interface {
	GetDataFolder() string
	GetSessionPassphrase() string
}

// BackendConfig configures the local development backend.
type BackendConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type mainConfig struct {
	EnvVars
	Backend
}

func New() Config {
	return mainConfig{}
}

package config

import "time"

const (
	portEnvVar   = "PORT"
	jwtSecretVar = "JWT_SECRET"
)

type Backend struct{}

var _ BackendConfig = Backend{}

func (Backend) GetPort() string {
	return formatPort(GetEnv(portEnvVar, "8000"))
}

func (Backend) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, "dev-secret-change-me")
}

func (Backend) GetAccessTokenExpiry() time.Duration {
	return 15 * time.Minute
}

func (Backend) GetRefreshTokenExpiry() time.Duration {
	return 7 * 24 * time.Hour
}

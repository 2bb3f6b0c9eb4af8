package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	AuthConfig
}

type EnvConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetDataFolder() string
	GetEnv() string
}

type AuthConfig interface {
	GetTenant() string
	GetRefreshTimeoutSeconds() int
	GetRequestTimeoutSeconds() int
}

type mainConfig struct {
	EnvVars
	Auth
}

// New loads a .env file when one is present and returns the
// environment-backed configuration.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}

package config

import "os"

const (
	appNameVar    = "APP_NAME"
	apiBaseURLVar = "API_BASE_URL"
	folderEnvVar  = "FOLDER"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Aqar Admin")
}

// GetAPIBaseURL returns the backend API root, e.g. "https://api.example.com/api".
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:5000/api")
}

// GetDataFolder returns the directory the credential store persists under.
func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

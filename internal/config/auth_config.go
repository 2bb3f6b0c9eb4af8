package config

import "strconv"

type Auth struct{}

var _ AuthConfig = Auth{}

// GetTenant returns the fixed tenant discriminator sent on every request.
func (Auth) GetTenant() string {
	return GetEnv("TENANT", "root")
}

// GetRefreshTimeoutSeconds bounds a single token-refresh call.
func (Auth) GetRefreshTimeoutSeconds() int {
	return getEnvInt("REFRESH_TIMEOUT_SECONDS", 30)
}

// GetRequestTimeoutSeconds bounds every outbound API call.
func (Auth) GetRequestTimeoutSeconds() int {
	return getEnvInt("REQUEST_TIMEOUT_SECONDS", 60)
}

func getEnvInt(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(envVar, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

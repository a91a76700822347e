package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration loaded from the environment
type Config struct {
	Env        string
	Version    string
	ServerPort string

	DBDriver string
	DBURL    string
	DBPath   string

	// AutocompleteLimit is the default row limit for handlers that do not set one
	AutocompleteLimit int

	MetricsEnabled bool
	Middleware     MiddlewareConfig
}

// MiddlewareConfig toggles the HTTP middleware stack
type MiddlewareConfig struct {
	CORSEnabled        bool
	CORSAllowedOrigins []string
	LoggingEnabled     bool
	LoggingSkipPaths   []string
}

// NewConfig builds the configuration from environment variables
func NewConfig() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		Version:           getEnv("APP_VERSION", "0.1.0"),
		ServerPort:        normalizePort(getEnv("SERVER_PORT", ":8100")),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBURL:             getEnv("DB_URL", ""),
		DBPath:            getEnv("DB_PATH", "storage/app.db"),
		AutocompleteLimit: getEnvInt("AUTOCOMPLETE_LIMIT", 10),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		Middleware: MiddlewareConfig{
			CORSEnabled:        getEnvBool("CORS_ENABLED", false),
			CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			LoggingEnabled:     getEnvBool("LOGGING_ENABLED", true),
			LoggingSkipPaths:   getEnvList("LOG_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
	}
}

// IsLoggingRequired reports whether requests to path should be logged
func (m *MiddlewareConfig) IsLoggingRequired(path string) bool {
	if !m.LoggingEnabled {
		return false
	}
	for _, skip := range m.LoggingSkipPaths {
		if skip != "" && strings.HasPrefix(path, skip) {
			return false
		}
	}
	return true
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func getEnvBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizePort accepts "8100" as well as ":8100"
func normalizePort(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

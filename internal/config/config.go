package config

import (
	"os"
	"strings"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr         string
	DatabasePath string
	JWTSecret    string
	JWTIssuer    string
	JWTAudience  string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Addr:         getEnv("ADDR", ":8080"),
		DatabasePath: getEnv("DATABASE_PATH", "todo.db"),
		JWTSecret:    getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:    getEnv("JWT_ISSUER", "todo-list-api"),
		JWTAudience:  getEnv("JWT_AUDIENCE", "todo-list-clients"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

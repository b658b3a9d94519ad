package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all server settings, sourced from the environment.
type Config struct {
	SearxngURL        string
	Host              string
	Port              int
	ServerName        string
	ServerVersion     string
	LogLevel          string
	DefaultMaxResults int
	RequestTimeout    time.Duration
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		SearxngURL:        envOr("SEARXNG_URL", "http://searxng:8080"),
		Host:              envOr("HOST", "0.0.0.0"),
		Port:              envInt("PORT", 8091),
		ServerName:        envOr("MCP_SERVER_NAME", "searxng-mcp-server"),
		ServerVersion:     envOr("MCP_SERVER_VERSION", "1.0.0"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		DefaultMaxResults: envInt("DEFAULT_MAX_RESULTS", 10),
		RequestTimeout:    time.Duration(envInt("REQUEST_TIMEOUT", 30)) * time.Second,
	}
}

// ListenAddr joins host and port into a net listen address.
func (c Config) ListenAddr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package config

import "time"

// ServerConfig holds configuration for the patrol server.
type ServerConfig struct {
	Addr          string        // Listen address (default ":8080")
	LogLevel      string        // Log level: debug, info, warn, error
	LogFormat     string        // Log format: text, json
	DBPath        string        // SQLite database path (":memory:" for testing)
	JobsPath      string        // Path to the YAML job catalog
	ShutdownGrace time.Duration // How long to wait for in-flight firings on shutdown
}

// DefaultServerConfig returns sensible defaults. An empty DBPath means
// the server resolves ~/.patrol/patrol.db at startup.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:          ":8080",
		LogLevel:      "info",
		LogFormat:     "text",
		DBPath:        "",
		JobsPath:      "jobs.yaml",
		ShutdownGrace: 10 * time.Second,
	}
}

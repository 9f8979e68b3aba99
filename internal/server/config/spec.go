// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for keeva-server.
type ServerConfig struct {
	Listen  ListenSection  `koanf:"listen"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ListenSection configures the RESP listener.
type ListenSection struct {
	// Addr is the TCP address clients connect to.
	Addr string `koanf:"addr"`

	// RateLimit is the maximum commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

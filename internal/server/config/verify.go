package config

import (
	"errors"
	"net"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg.Listen.Addr == "" {
		return errors.New("listen.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.Listen.Addr); err != nil {
		return errors.New("listen.addr is not a valid host:port address: " + err.Error())
	}

	if cfg.Listen.RateLimit < 0 {
		return errors.New("listen.rate_limit must not be negative")
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics.addr is required when metrics are enabled")
		}
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return errors.New("metrics.addr is not a valid host:port address: " + err.Error())
		}
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}

	switch cfg.Log.Format {
	case "", "json", "text", "console":
	default:
		return errors.New("log.format must be json or text")
	}

	return nil
}

package config

import (
	"fmt"
	"net"
	"time"
)

const (
	defaultMetricsPort           = 2112
	defaultMetricsHost           = "127.0.0.1"
	defaultMetricsUpdateInterval = 1 * time.Second

	defaultAPIPort = 8080
	defaultAPIHost = "127.0.0.1"
)

// MetricsConfig defines the Prometheus server configuration
type MetricsConfig struct {
	Host           string        `long:"host" description:"IP of the Prometheus server"`
	Port           int           `long:"port" description:"Port of the Prometheus server"`
	UpdateInterval time.Duration `long:"updateinterval" description:"The interval of Prometheus metrics updated"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.UpdateInterval <= 0 {
		return fmt.Errorf("invalid update interval: %v", cfg.UpdateInterval)
	}
	return validateHostPort(cfg.Host, cfg.Port)
}

func (cfg *MetricsConfig) Address() (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)), nil
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Port:           defaultMetricsPort,
		Host:           defaultMetricsHost,
		UpdateInterval: defaultMetricsUpdateInterval,
	}
}

// APIConfig defines the ledger HTTP API configuration
type APIConfig struct {
	Host string `long:"host" description:"IP the ledger API listens on"`
	Port int    `long:"port" description:"Port the ledger API listens on"`
}

func (cfg *APIConfig) Validate() error {
	return validateHostPort(cfg.Host, cfg.Port)
}

func (cfg *APIConfig) Address() (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)), nil
}

func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Port: defaultAPIPort,
		Host: defaultAPIHost,
	}
}

func validateHostPort(host string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}

	if ip := net.ParseIP(host); ip == nil {
		return fmt.Errorf("invalid host: %v", host)
	}

	return nil
}

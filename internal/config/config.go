// Package config loads the explorer's typed configuration from
// defaults, an optional YAML file, and environment variables, in that
// override order (spec.md §6, SPEC_FULL.md §4.8).
package config

import "time"

// Config is the full process configuration. Every field has a default
// set by setDefaults and may be overridden by a YAML file or by an
// IROHA_EXPLORER_* environment variable.
type Config struct {
	ToriiURLs         []string         `json:"toriiUrls" mapstructure:"toriiUrls"`
	Account           string           `json:"account" mapstructure:"account"`
	AccountPrivateKey string           `json:"accountPrivateKey" mapstructure:"accountPrivateKey"`
	LogLevel          string           `json:"logLevel" mapstructure:"logLevel"`
	LogFormat         string           `json:"logFormat" mapstructure:"logFormat"`
	HTTP              *HTTPConfig      `json:"http" mapstructure:"http"`
	Telemetry         *TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
	Store             *StoreConfig     `json:"store" mapstructure:"store"`
	Prometheus        *PrometheusConfig `json:"prometheus" mapstructure:"prometheus"`
}

type HTTPConfig struct {
	Address             string `json:"address" mapstructure:"address"`
	RequestExtendedLogs bool   `json:"requestExtendedLogs" mapstructure:"requestExtendedLogs"`
}

type TelemetryConfig struct {
	Enabled         bool          `json:"enabled" mapstructure:"enabled"`
	PollInterval    time.Duration `json:"pollInterval" mapstructure:"pollInterval"`
	MetricsInterval time.Duration `json:"metricsInterval" mapstructure:"metricsInterval"`
}

type StoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

type PrometheusConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	Addr     string `json:"addr" mapstructure:"addr"`
}

package config

import "time"

func getDefaultConfig() *Config {
	return &Config{
		ToriiURLs: []string{"http://localhost:8080"},
		LogLevel:  "INFO",
		LogFormat: "tint",
		HTTP:      getDefaultHTTPConfig(),
		Telemetry: getDefaultTelemetryConfig(),
		Store:     getDefaultStoreConfig(),
		Prometheus: getDefaultPrometheusConfig(),
	}
}

func getDefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Address:             ":8081",
		RequestExtendedLogs: false,
	}
}

func getDefaultTelemetryConfig() *TelemetryConfig {
	return &TelemetryConfig{
		Enabled:         true,
		PollInterval:    time.Second,
		MetricsInterval: 5 * time.Second,
	}
}

func getDefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		Path: "iroha-explorer.sqlite",
	}
}

func getDefaultPrometheusConfig() *PrometheusConfig {
	return &PrometheusConfig{
		Enabled:  true,
		Endpoint: "/metrics",
		Addr:     "",
	}
}

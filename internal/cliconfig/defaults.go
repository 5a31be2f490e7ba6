package cliconfig

import "time"

// Default values.
const (
	DefaultAdminURL  = "http://127.0.0.1:8888"
	DefaultProxyURL  = "http://127.0.0.1:8500"
	DefaultTimeout   = time.Second
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		AdminURL:  DefaultAdminURL,
		ProxyURL:  DefaultProxyURL,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}
	for _, key := range []string{"adminUrl", "proxyUrl", "timeout", "logLevel", "logFormat", "logSource", "json"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

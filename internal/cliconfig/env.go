package cliconfig

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variable names
const (
	EnvAdminURL  = "HOVERFLY_ADMIN_URL"
	EnvProxyURL  = "HOVERFLY_PROXY_URL"
	EnvTimeout   = "HFCTL_TIMEOUT"
	EnvLogLevel  = "HFCTL_LOG_LEVEL"
	EnvLogFormat = "HFCTL_LOG_FORMAT"
	EnvLogSource = "HFCTL_LOG_SOURCE"
	EnvJSON      = "HFCTL_JSON"
	EnvConfig    = "HFCTL_CONFIG"
)

// LoadEnvConfig applies the environment variables that are set.
// An unparsable HFCTL_TIMEOUT is reported and leaves the timeout unchanged.
func LoadEnvConfig(cfg *CLIConfig) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvAdminURL); v != "" {
		cfg.AdminURL = v
		cfg.Sources["adminUrl"] = SourceEnv
	}

	if v := os.Getenv(EnvProxyURL); v != "" {
		cfg.ProxyURL = v
		cfg.Sources["proxyUrl"] = SourceEnv
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = timeout
		cfg.Sources["timeout"] = SourceEnv
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	if v := os.Getenv(EnvLogSource); v != "" {
		cfg.LogSource = parseBool(v)
		cfg.Sources["logSource"] = SourceEnv
	}

	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON = parseBool(v)
		cfg.Sources["json"] = SourceEnv
	}
	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

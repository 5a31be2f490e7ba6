// Package hoverflytest helps tests that drive Hoverfly: it locates the admin
// and proxy endpoints, resets server state, boots Hoverfly in a container and
// provides FakeAdmin, an in-memory stand-in for the admin API.
package hoverflytest

import "os"

// Environment variables read by this package.
const (
	EnvAdminURL    = "HOVERFLY_ADMIN_URL"
	EnvIntegration = "HOVERFLY_INTEGRATION"
)

// Defaults for a locally running Hoverfly.
const (
	DefaultAdminURL = "http://127.0.0.1:8888"
	DefaultProxyURL = "http://127.0.0.1:8500"
)

// AdminURLFromEnv returns HOVERFLY_ADMIN_URL or DefaultAdminURL.
func AdminURLFromEnv() string {
	if v := os.Getenv(EnvAdminURL); v != "" {
		return v
	}
	return DefaultAdminURL
}

// ProxyURLFromEnv returns http_proxy, then HTTP_PROXY, or DefaultProxyURL.
func ProxyURLFromEnv() string {
	for _, name := range []string{"http_proxy", "HTTP_PROXY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return DefaultProxyURL
}

// IntegrationEnabled reports whether HOVERFLY_INTEGRATION=1.
func IntegrationEnabled() bool {
	return os.Getenv(EnvIntegration) == "1"
}

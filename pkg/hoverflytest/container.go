package hoverflytest

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the Hoverfly image started by StartContainer.
const Image = "spectolabs/hoverfly:v1.9.0"

const (
	adminPort = "8888/tcp"
	proxyPort = "8500/tcp"
)

// Container is a running Hoverfly container.
type Container struct {
	AdminURL string
	ProxyURL string

	container testcontainers.Container
}

// StartContainer boots Hoverfly and waits until the admin API answers. The
// container is removed when the test ends. The test is skipped unless
// HOVERFLY_INTEGRATION=1.
func StartContainer(ctx context.Context, t testing.TB) *Container {
	t.Helper()
	if !IntegrationEnabled() {
		t.Skipf("set %s=1 to run tests against a Hoverfly container", EnvIntegration)
	}

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{adminPort, proxyPort},
			WaitingFor: wait.ForHTTP("/api/v2/hoverfly/mode").
				WithPort(adminPort).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	}

	hoverfly, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, hoverfly)
	require.NoError(t, err)

	adminURL, err := hoverfly.PortEndpoint(ctx, adminPort, "http")
	require.NoError(t, err)
	proxyURL, err := hoverfly.PortEndpoint(ctx, proxyPort, "http")
	require.NoError(t, err)

	return &Container{AdminURL: adminURL, ProxyURL: proxyURL, container: hoverfly}
}

// Logs returns everything the container wrote so far.
func (c *Container) Logs(ctx context.Context) (string, error) {
	rc, err := c.container.Logs(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

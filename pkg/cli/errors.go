package cli

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/bwilczek/hoverfly-client-go/pkg/client"
)

// FormatConnectionError returns a user-friendly message for err, with hints
// when Hoverfly could not be reached.
func FormatConnectionError(err error) string {
	var rejected *client.RejectedError
	if errors.As(err, &rejected) {
		return "Error: " + rejected.Error()
	}

	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &opErr) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		target := ""
		if cfg != nil {
			target = cfg.AdminURL
		}
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Start Hoverfly: docker run -p 8888:8888 -p 8500:8500 spectolabs/hoverfly
  • Check that the admin API listens on %s
  • Override the admin URL with --admin-url or HOVERFLY_ADMIN_URL`, err, target)
	}
	return "Error: " + err.Error()
}

// Package logging provides structured logging configuration for hfctl and the
// Hoverfly client.
//
// This package wraps log/slog so the client, the CLI and the test harness log
// the same way.
//
// # Usage
//
//	cfg := logging.FromSettings("debug", "json", false)
//	cfg.Component = "hfctl"
//	logger := logging.New(cfg)
//
//	c := client.New(adminURL, client.WithLogger(logger))
//
// # Integration
//
// Components accept a *slog.Logger through an option. When none is given they
// fall back to Nop().
package logging

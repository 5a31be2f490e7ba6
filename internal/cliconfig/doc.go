// Package cliconfig provides configuration types and loading for the hfctl CLI.
//
// It implements a layered configuration system with the following precedence
// (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (HOVERFLY_* and HFCTL_* prefixes)
//  3. Local config file (.hfctl.yaml in current directory, or HFCTL_CONFIG)
//  4. Global config file (~/.config/hfctl/config.yaml)
//  5. Default values
//
// It tracks the source of each configuration value for debugging purposes.
package cliconfig

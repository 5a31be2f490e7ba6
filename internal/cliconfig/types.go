package cliconfig

import "time"

// CLIConfig is the resolved configuration of hfctl.
type CLIConfig struct {
	// Hoverfly endpoints
	AdminURL string `yaml:"adminUrl" json:"adminUrl"`
	ProxyURL string `yaml:"proxyUrl" json:"proxyUrl"`

	// Timeout applies to every admin API request.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogSource bool   `yaml:"logSource" json:"logSource"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were present in a loaded file, so an
	// explicit false can override a true from a lower layer.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// Config sources, lowest precedence first.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

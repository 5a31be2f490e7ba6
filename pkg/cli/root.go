package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/internal/cliconfig"
	"github.com/bwilczek/hoverfly-client-go/internal/logging"
	"github.com/bwilczek/hoverfly-client-go/pkg/client"
)

var (
	// Persistent flags available to all subcommands
	adminURL   string
	timeout    time.Duration
	jsonOutput bool
	logLevel   string
	logFormat  string
	logSource  bool

	// Resolved in PersistentPreRunE
	cfg    *cliconfig.CLIConfig
	logger *slog.Logger

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hfctl",
	Short: "hfctl drives a Hoverfly instance through its admin API",
	Long: `hfctl switches Hoverfly modes, manages middleware, uploads and merges
simulations, and inspects the request journal.

The admin URL comes from --admin-url, HOVERFLY_ADMIN_URL, a .hfctl.yaml file in
the current directory or ~/.config/hfctl/config.yaml, in that order.`,
	PersistentPreRunE: resolveConfig,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, FormatConnectionError(err))
		return 1
	}
	return 0
}

// Execute runs the CLI and exits. This is called by main.main().
func Execute() {
	os.Exit(Main())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&adminURL, "admin-url", cliconfig.DefaultAdminURL, "Hoverfly admin API base URL")
	flags.DurationVar(&timeout, "timeout", cliconfig.DefaultTimeout, "Timeout of each admin API request")
	flags.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	flags.StringVar(&logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	flags.BoolVar(&logSource, "log-source", false, "Add file:line of the call site to log records")
}

// resolveConfig layers flags that were set explicitly over env, files and
// defaults, then builds the logger.
func resolveConfig(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	overrides := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	if flags.Changed("admin-url") {
		overrides.AdminURL = adminURL
	}
	if flags.Changed("timeout") {
		overrides.Timeout = timeout
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		overrides.LogFormat = logFormat
	}
	if flags.Changed("log-source") {
		overrides.LogSource = logSource
		overrides.SetFields["logSource"] = true
	}
	if flags.Changed("json") {
		overrides.JSON = jsonOutput
		overrides.SetFields["json"] = true
	}

	resolved, err := cliconfig.Resolve(overrides)
	if err != nil {
		return err
	}
	cfg = resolved
	jsonOutput = cfg.JSON
	logCfg := logging.FromSettings(cfg.LogLevel, cfg.LogFormat, cfg.LogSource)
	logCfg.Component = "hfctl"
	logger = logging.New(logCfg)
	logger.Debug("configuration resolved",
		"adminUrl", cfg.AdminURL,
		"adminUrlSource", cfg.Sources["adminUrl"],
		"timeout", cfg.Timeout,
	)
	return nil
}

// newClient builds an admin API client from the resolved configuration.
func newClient() *client.Client {
	return client.New(cfg.AdminURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
	)
}

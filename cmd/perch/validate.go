package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"perch-hq/perch/pkg/cli"
	"perch-hq/perch/pkg/config"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults and environment overrides, and
run the full validation pass without starting the server.

On success the command prints a summary of the effective configuration.
Credential material is never printed: the summary only reports where the
upstream token comes from.

Examples:
  # Validate the default config file
  perch validate

  # Validate a specific file
  perch validate --config /etc/perch/perch.yaml

  # Machine-readable summary
  perch validate --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// configSummary is the printable shape of an effective configuration.
type configSummary struct {
	ConfigFile     string `json:"configFile"`
	ListenAddress  string `json:"listenAddress"`
	TLSEnabled     bool   `json:"tlsEnabled"`
	UpstreamURL    string `json:"upstreamUrl"`
	TokenSource    string `json:"tokenSource"`
	RateLimit      int    `json:"rateLimit"`
	RateWindow     string `json:"rateWindow"`
	RateLimitStore string `json:"rateLimitStore"`
	LogLevel       string `json:"logLevel"`
	LogFormat      string `json:"logFormat"`
	MetricsPath    string `json:"metricsPath,omitempty"`
	TracingEnabled bool   `json:"tracingEnabled"`
	ReloadEnabled  bool   `json:"reloadEnabled"`
}

func (s configSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Config file:    %s\n", s.ConfigFile)
	fmt.Fprintf(&b, "Listen address: %s (TLS: %v)\n", s.ListenAddress, s.TLSEnabled)
	fmt.Fprintf(&b, "Upstream:       %s (token: %s)\n", s.UpstreamURL, s.TokenSource)
	fmt.Fprintf(&b, "Rate limit:     %d req / %s (%s store)\n", s.RateLimit, s.RateWindow, s.RateLimitStore)
	fmt.Fprintf(&b, "Logging:        %s (%s)\n", s.LogLevel, s.LogFormat)
	if s.MetricsPath != "" {
		fmt.Fprintf(&b, "Metrics:        %s\n", s.MetricsPath)
	} else {
		b.WriteString("Metrics:        disabled\n")
	}
	fmt.Fprintf(&b, "Tracing:        %v\n", s.TracingEnabled)
	fmt.Fprintf(&b, "Hot reload:     %v", s.ReloadEnabled)
	return b.String()
}

func validateConfig(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(cli.OutputFormat(validateFlags.format))
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("validation failed: %v", err))
	}

	if validateFlags.format == string(cli.FormatText) {
		fmt.Println("✓ Configuration valid")
		fmt.Println()
	}

	return formatter.FormatTo(os.Stdout, summarize(cfg))
}

func summarize(cfg *config.Config) configSummary {
	tokenSource := "secrets chain"
	if strings.TrimSpace(cfg.Upstream.Token) != "" {
		tokenSource = "static"
	}

	metrics := ""
	if !cfg.Telemetry.Metrics.Disabled {
		metrics = metricsPath(cfg)
	}

	return configSummary{
		ConfigFile:     cfgFile,
		ListenAddress:  cfg.Server.ListenAddress,
		TLSEnabled:     cfg.Server.TLS.Enabled,
		UpstreamURL:    cfg.Upstream.URL,
		TokenSource:    tokenSource,
		RateLimit:      cfg.RateLimit.Limit,
		RateWindow:     cfg.RateLimit.Window.String(),
		RateLimitStore: cfg.RateLimit.Store,
		LogLevel:       cfg.Telemetry.Logging.Level,
		LogFormat:      cfg.Telemetry.Logging.Format,
		MetricsPath:    metrics,
		TracingEnabled: cfg.Telemetry.Tracing.Enabled,
		ReloadEnabled:  cfg.Reload.Enabled,
	}
}

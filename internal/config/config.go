package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values.
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target
	TargetURL     string
	TargetServer  string
	QVLSection    string
	VendorKeyword string
	SeriesKeyword string

	// Output
	OutputPath    string
	TableDumpPath string

	// Browser
	MaxWait      time.Duration
	PollInterval time.Duration
	SettleDelay  time.Duration
	UserAgent    string
	ChromePath   string
	Headless     bool
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags, in that order of increasing precedence. Caller should pass the root
// *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:      DefaultLogLevel,
		JSONLog:       DefaultJSONLog,
		TargetURL:     DefaultTargetURL,
		TargetServer:  DefaultTargetServer,
		QVLSection:    DefaultQVLSection,
		VendorKeyword: DefaultVendorKeyword,
		SeriesKeyword: DefaultSeriesKeyword,
		OutputPath:    DefaultOutputPath,
		MaxWait:       DefaultMaxWait,
		PollInterval:  DefaultPollInterval,
		SettleDelay:   DefaultSettleDelay,
		UserAgent:     DefaultUserAgent,
		Headless:      DefaultHeadless,
	}

	// Environment overrides
	if v := os.Getenv("QVLSCAN_URL"); v != "" {
		cfg.TargetURL = v
	}
	if v := os.Getenv("QVLSCAN_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("QVLSCAN_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("QVLSCAN_VENDOR_KEYWORD"); v != "" {
		cfg.VendorKeyword = v
	}
	if v := os.Getenv("QVLSCAN_SERIES_KEYWORD"); v != "" {
		cfg.SeriesKeyword = v
	}

	// CLI flag overrides
	if cmd != nil {
		if err := readFlags(cmd, cfg); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFlags(cmd *cobra.Command, cfg *Config) error {
	lookupString(cmd, "url", &cfg.TargetURL)
	lookupString(cmd, "server", &cfg.TargetServer)
	lookupString(cmd, "section", &cfg.QVLSection)
	lookupString(cmd, "vendor-keyword", &cfg.VendorKeyword)
	lookupString(cmd, "series-keyword", &cfg.SeriesKeyword)
	lookupString(cmd, "output", &cfg.OutputPath)
	lookupString(cmd, "dump-table", &cfg.TableDumpPath)
	lookupString(cmd, "user-agent", &cfg.UserAgent)
	lookupString(cmd, "chrome-path", &cfg.ChromePath)
	if err := lookupDuration(cmd, "max-wait", &cfg.MaxWait); err != nil {
		return err
	}
	if err := lookupDuration(cmd, "poll-interval", &cfg.PollInterval); err != nil {
		return err
	}
	if err := lookupDuration(cmd, "settle-delay", &cfg.SettleDelay); err != nil {
		return err
	}

	if flagTrue(cmd, "headful") {
		cfg.Headless = false
	}
	if flagTrue(cmd, "json") {
		cfg.JSONLog = true
	}
	if flagTrue(cmd, "verbose") {
		cfg.LogLevel = "debug"
	}
	if flagTrue(cmd, "quiet") {
		cfg.LogLevel = "error"
	}
	return nil
}

// The flag surface lives on the root command's persistent set; subcommands
// parse into the same shared flag objects.
func lookupString(cmd *cobra.Command, name string, dst *string) {
	if f := cmd.PersistentFlags().Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func lookupDuration(cmd *cobra.Command, name string, dst *time.Duration) error {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	d, err := time.ParseDuration(f.Value.String())
	if err != nil {
		return fmt.Errorf("invalid --%s value %q: %w", name, f.Value.String(), err)
	}
	*dst = d
	return nil
}

func flagTrue(cmd *cobra.Command, name string) bool {
	f := cmd.PersistentFlags().Lookup(name)
	return f != nil && f.Value.String() == "true"
}

package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if !strings.HasPrefix(c.TargetURL, "http://") && !strings.HasPrefix(c.TargetURL, "https://") {
		return fmt.Errorf("target url must start with http:// or https://")
	}
	// An empty keyword is a substring of everything and would classify the
	// whole table.
	if strings.TrimSpace(c.VendorKeyword) == "" || strings.TrimSpace(c.SeriesKeyword) == "" {
		return fmt.Errorf("match keywords must be non-empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must be non-empty")
	}
	if c.MaxWait <= 0 {
		return fmt.Errorf("max wait must be > 0")
	}
	if c.PollInterval <= 0 || c.PollInterval > c.MaxWait {
		return fmt.Errorf("poll interval must be > 0 and <= max wait")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle delay must be >= 0")
	}
	return nil
}

package config

import "github.com/spf13/cobra"

// RegisterFlags registers the CLI flag surface on the provided root command.
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as raw JSON")

	cmd.PersistentFlags().String("url", DefaultTargetURL, "QVL page URL to scan")
	cmd.PersistentFlags().String("server", DefaultTargetServer, "Target server model reported in the results")
	cmd.PersistentFlags().String("section", DefaultQVLSection, "QVL section label reported in the results")
	cmd.PersistentFlags().String("vendor-keyword", DefaultVendorKeyword, "Vendor keyword to match (vendor or product name)")
	cmd.PersistentFlags().String("series-keyword", DefaultSeriesKeyword, "Series keyword to match (product name or series)")
	cmd.PersistentFlags().StringP("output", "o", DefaultOutputPath, "Path of the JSON result document")
	cmd.PersistentFlags().String("dump-table", "", "Also write the extracted table as a markdown file")

	cmd.PersistentFlags().String("max-wait", DefaultMaxWait.String(), "Maximum time to wait for the QVL table to appear")
	cmd.PersistentFlags().String("poll-interval", DefaultPollInterval.String(), "Interval between table-presence probes")
	cmd.PersistentFlags().String("settle-delay", DefaultSettleDelay.String(), "Render settle delay after navigation and after the table appears")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium executable")
	cmd.PersistentFlags().Bool("headful", false, "Run the browser with a visible window (debugging)")
}

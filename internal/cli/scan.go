package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/qvl-tools/qvlscan/internal/app"
	"github.com/qvl-tools/qvlscan/internal/config"
	"github.com/qvl-tools/qvlscan/internal/report"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [url]",
	Short: "Scan one QVL page and report matching products",
	Long: `Loads the QVL page in headless Chrome, waits for the product table to
render, extracts every row, classifies rows against the configured vendor and
series keywords, and writes a console report plus a JSON result document.

The run exits 0 when fetch, parse, and aggregation all succeed, whether or not
any product matched. A fetch or parse failure exits 1.`,
	Example: `  # Scan the default target
  qvlscan scan

  # Scan another server's QVL for a different vendor
  qvlscan scan https://www.gigabyte.com/Enterprise/GPU-Server/R283-Z96/Support-QVL --vendor-keyword=SOLIDIGM --series-keyword=D7

  # Keep a markdown copy of the extracted table
  qvlscan scan --dump-table qvl_table.md

  # Slow page: wait longer for the table to render
  qvlscan scan --max-wait 30s --settle-delay 5s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		url := args[0]
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("invalid URL: must start with http:// or https://")
		}
		cfg.TargetURL = url
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}

	// Hard ceiling on the whole run; the fetcher enforces its own table wait
	// inside this.
	ctx, cancel := context.WithTimeout(context.Background(),
		cfg.MaxWait+2*cfg.SettleDelay+30*time.Second)
	defer cancel()

	log.Info().
		Str("url", cfg.TargetURL).
		Str("vendor_keyword", cfg.VendorKeyword).
		Str("series_keyword", cfg.SeriesKeyword).
		Msg("Starting QVL scan")

	stopSpinner := startSpinner(cfg)
	result, err := application.Run(ctx)
	stopSpinner()

	if err != nil {
		for _, msg := range result.Errors {
			log.Error().Msg(msg)
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	report.WriteConsole(os.Stdout, result)

	if err := report.SaveJSON(result, cfg.OutputPath); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Printf("\nResults saved to: %s\n", cfg.OutputPath)

	if cfg.TableDumpPath != "" {
		if err := report.SaveTableMarkdown(result.TableHTML, cfg.TableDumpPath); err != nil {
			log.Warn().Err(err).Str("file", cfg.TableDumpPath).Msg("Failed to dump table markdown")
		} else {
			fmt.Printf("Table dumped to: %s\n", cfg.TableDumpPath)
		}
	}

	return nil
}

// startSpinner shows a stderr spinner while the browser loads the page.
// Returns a stop function; a no-op when logs are quiet or JSON.
func startSpinner(cfg *config.Config) func() {
	if cfg.JSONLog || cfg.LogLevel == "error" {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Loading QVL page"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		_ = bar.Finish()
	}
}

package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qvl-tools/qvlscan/internal/qvl"
	"github.com/qvl-tools/qvlscan/pkg/models"
)

// Run executes the pipeline once: fetch, parse, classify, aggregate. Each
// stage populates the ResultSet and hands it forward; no stage mutates an
// earlier stage's output. On failure the ResultSet carries the error messages
// collected so far and is returned alongside the stage error.
func (a *Application) Run(ctx context.Context) (*models.ResultSet, error) {
	cfg := a.Config
	result := models.NewResultSet(cfg.TargetServer, cfg.TargetURL)

	log.Debug().
		Str("fetcher", a.Fetcher.Name()).
		Str("url", cfg.TargetURL).
		Msg("Fetching QVL page")
	snap, err := a.Fetcher.Fetch(ctx, models.FetchOptions{
		URL:          cfg.TargetURL,
		MaxWait:      cfg.MaxWait,
		PollInterval: cfg.PollInterval,
		SettleDelay:  cfg.SettleDelay,
		UserAgent:    cfg.UserAgent,
		ChromePath:   cfg.ChromePath,
		Headless:     cfg.Headless,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("error fetching QVL page: %v", err))
		return result, err
	}

	table, err := qvl.ParseSnapshot(snap.HTML)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("error extracting QVL table: %v", err))
		return result, err
	}

	result.AllProducts = table.Records
	result.Matched = a.Classifier.Classify(table.Records)
	result.TableHTML = table.HTML
	result.Summary = qvl.Summarize(result.AllProducts, result.Matched, cfg.TargetURL)
	result.Search = qvl.SummarizeSearch(a.Classifier, result.Summary, cfg.QVLSection, cfg.TargetServer)

	log.Info().
		Int("total", result.Summary.TotalProducts).
		Int("matched", result.Summary.MatchedProducts).
		Bool("search_successful", result.Search.Successful).
		Msg("Scan completed")
	return result, nil
}

// Package app wires the application dependencies and runs the scan pipeline.
package app

import (
	"fmt"

	"github.com/qvl-tools/qvlscan/internal/config"
	"github.com/qvl-tools/qvlscan/internal/fetcher"
	"github.com/qvl-tools/qvlscan/internal/qvl"
)

// Application holds the dependencies of one scan run. The fetcher is an
// interface so the pipeline can be exercised with a fake in tests.
type Application struct {
	Config     *config.Config
	Fetcher    fetcher.Fetcher
	Classifier *qvl.Classifier
}

// New creates an Application from the given config, backed by the headless
// Chrome fetcher.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	return &Application{
		Config:     cfg,
		Fetcher:    fetcher.NewBrowser(),
		Classifier: qvl.NewClassifier(cfg.VendorKeyword, cfg.SeriesKeyword),
	}, nil
}

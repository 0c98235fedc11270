// Package fetcher obtains a rendered DOM snapshot of the QVL page.
package fetcher

import (
	"context"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

// Fetcher obtains a rendered DOM snapshot for one URL. Implementations must
// release all browser resources on every exit path, including failures.
type Fetcher interface {
	Fetch(ctx context.Context, opts models.FetchOptions) (*models.Snapshot, error)

	// Name identifies the implementation for logging.
	Name() string
}

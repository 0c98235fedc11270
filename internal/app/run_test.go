package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/qvl-tools/qvlscan/internal/config"
	"github.com/qvl-tools/qvlscan/internal/fetcher"
	"github.com/qvl-tools/qvlscan/internal/qvl"
	"github.com/qvl-tools/qvlscan/pkg/models"
)

type fakeFetcher struct {
	snap *models.Snapshot
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, opts models.FetchOptions) (*models.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func (f *fakeFetcher) Name() string { return "fake" }

func testApp(t *testing.T, fake *fakeFetcher) *Application {
	t.Helper()
	cfg := &config.Config{
		TargetURL:     "https://example.com/Support-QVL",
		TargetServer:  "G293-S40-AAP1",
		QVLSection:    "Storage - NVMe SSD",
		VendorKeyword: "TRUSTA",
		SeriesKeyword: "T7P5",
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.Fetcher = fake
	return a
}

const scenarioPage = `
<html><body>
<table>
	<thead>
		<tr>
			<th>Product Name</th><th>Vendor</th><th>Interface</th>
			<th>Interface Speed</th><th>Capacity</th>
		</tr>
	</thead>
	<tbody>
		<tr><td>T7P5-4TB</td><td>TRUSTA</td><td>NVMe</td><td>Gen5</td><td>4TB</td></tr>
		<tr><td>980 Pro</td><td>Samsung</td><td>NVMe</td><td>Gen4</td><td>2TB</td></tr>
		<tr><td>  </td><td>Ghost</td><td>NVMe</td><td>Gen5</td><td>8TB</td></tr>
	</tbody>
</table>
</body></html>
`

func TestRun_EndToEnd(t *testing.T) {
	a := testApp(t, &fakeFetcher{snap: &models.Snapshot{HTML: scenarioPage}})

	result, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Summary.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d, want 2 (blank row excluded)", result.Summary.TotalProducts)
	}
	if result.Summary.MatchedProducts != 1 {
		t.Errorf("MatchedProducts = %d, want 1", result.Summary.MatchedProducts)
	}
	if result.Summary.Gen5Products != 1 {
		t.Errorf("Gen5Products = %d, want 1", result.Summary.Gen5Products)
	}
	if len(result.Summary.CapacityOptions) != 1 || result.Summary.CapacityOptions[0] != "4.0TB" {
		t.Errorf("CapacityOptions = %v, want [4.0TB]", result.Summary.CapacityOptions)
	}
	if !result.Search.Successful {
		t.Error("search should be successful")
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}

	// Every classified record's source record also appears in the full
	// sequence, in the same relative order.
	if result.Matched[0].Record.ProductName() != result.AllProducts[0].ProductName() {
		t.Error("classified record does not reference the full sequence's record")
	}
	if result.TableHTML == "" {
		t.Error("table HTML not carried for the markdown dump")
	}
}

func TestRun_FetchError(t *testing.T) {
	fetchErr := &fetcher.FetchError{Code: fetcher.CodeTimeout, Message: "no table element after 15s"}
	a := testApp(t, &fakeFetcher{err: fetchErr})

	result, err := a.Run(context.Background())
	if err == nil {
		t.Fatal("Run should fail when the fetch fails")
	}
	if !errors.Is(err, &fetcher.FetchError{Code: fetcher.CodeTimeout}) {
		t.Errorf("err = %v, want timeout FetchError", err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("collected errors = %v, want exactly one", result.Errors)
	}
	if len(result.AllProducts) != 0 || len(result.Matched) != 0 {
		t.Error("failed fetch must not produce records")
	}
}

func TestRun_ParseError(t *testing.T) {
	a := testApp(t, &fakeFetcher{snap: &models.Snapshot{HTML: "<html><body>maintenance</body></html>"}})

	result, err := a.Run(context.Background())
	if !errors.Is(err, qvl.ErrTableNotFound) {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("collected errors = %v, want exactly one", result.Errors)
	}
}

func TestRun_AllRowsSkippedRendersEmptyLists(t *testing.T) {
	page := `
	<table>
		<thead><tr><th>Product Name</th><th>Vendor</th></tr></thead>
		<tbody><tr><td>   </td><td>Ghost</td></tr></tbody>
	</table>
	`
	a := testApp(t, &fakeFetcher{snap: &models.Snapshot{HTML: page}})

	result, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Summary.TotalProducts != 0 {
		t.Errorf("TotalProducts = %d, want 0", result.Summary.TotalProducts)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshaling result: %v", err)
	}
	for _, want := range []string{
		`"all_nvme_products":[]`,
		`"trusta_products_found":[]`,
		`"errors":[]`,
	} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("document missing %s:\n%s", want, raw)
		}
	}
}

func TestRun_NoMatchStillSucceeds(t *testing.T) {
	page := `
	<table>
		<thead><tr><th>Product Name</th><th>Vendor</th></tr></thead>
		<tbody><tr><td>980 Pro</td><td>Samsung</td></tr></tbody>
	</table>
	`
	a := testApp(t, &fakeFetcher{snap: &models.Snapshot{HTML: page}})

	result, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("a run with zero matches must still succeed: %v", err)
	}
	if result.Search.Successful {
		t.Error("search should not be successful with zero matches")
	}
	if result.Summary.TotalProducts != 1 {
		t.Errorf("TotalProducts = %d, want 1", result.Summary.TotalProducts)
	}
}
